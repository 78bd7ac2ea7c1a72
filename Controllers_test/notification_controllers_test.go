package Controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nalaku/printshop-app/controllers"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
)

func setupTestDBForNotifications(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Notification{}, &models.User{}); err != nil {
		t.Fatal(err)
	}
	// Seed: buat user untuk notifikasi
	user := models.User{
		Name:     "Test User",
		Email:    "testuser@example.com",
		Password: "secret",
		Role:     "admin",
	}
	db.Create(&user)
	return db
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", notifCtrl.GetAllNotifications)
	router.POST("/notifications", notifCtrl.CreateNotification)
	router.GET("/notifications/:notif_id", notifCtrl.GetNotificationByID)
	router.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)
	return router
}

func TestNotificationCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	router := setupNotificationRouter(db)

	// Create
	w := postJSON(t, router, "POST", "/notifications", map[string]interface{}{
		"user_id": 1,
		"title":   "Pesanan baru",
		"message": "Order N-001 masuk dan siap dikerjakan",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	createResp := decodeBody(t, w)
	data := createResp["data"].(map[string]interface{})
	notifIDFloat, ok := data["id"].(float64)
	assert.True(t, ok)
	notifID := int(notifIDFloat)

	// Get
	url := "/notifications/" + strconv.Itoa(notifID)
	req, err := http.NewRequest("GET", url, nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete
	req, err = http.NewRequest("DELETE", url, nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateNotificationRequiresTitle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	router := setupNotificationRouter(db)

	w := postJSON(t, router, "POST", "/notifications", map[string]interface{}{
		"message": "Tanpa judul",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
