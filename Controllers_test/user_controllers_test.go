package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nalaku/printshop-app/controllers"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
)

// setupTestDB menggunakan SQLite in-memory untuk testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupRouterForTest(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupRouterForTest(db)

	// --- Register ---
	w := postJSON(t, router, "POST", "/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
		"role":     "Admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	registerResponse := decodeBody(t, w)
	assert.Equal(t, true, registerResponse["status"])
	data := registerResponse["data"].(map[string]interface{})
	assert.NotNil(t, data["user_id"])

	// Role dinormalisasi ke huruf kecil
	var user models.User
	db.First(&user)
	assert.Equal(t, "admin", user.Role)

	// --- Login ---
	w = postJSON(t, router, "POST", "/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	loginResponse := decodeBody(t, w)
	assert.Equal(t, true, loginResponse["status"])
	data = loginResponse["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", data["user_role"])
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupRouterForTest(db)

	w := postJSON(t, router, "POST", "/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
		"role":     "kasir",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "POST", "/login", map[string]string{
		"email":    "test@example.com",
		"password": "salah-total",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
