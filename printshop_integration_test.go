package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/router"
	"github.com/nalaku/printshop-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama toko:
// 0. Seed user + customer + bahan, lalu login -> token
// 1. Create order -> total mengikuti level customer, Belum Lunas
// 2. DP sebagian -> masih Belum Lunas
// 3. Pelunasan -> Lunas
// 4. Pelaksana ambil pekerjaan -> Proses
// 5. Item produksi -> Selesai
// 6. Laporan penjualan memuat order tadi
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	orderID := createOrderTest(t, r, token)

	// DP 100000 dari 132000: masih Belum Lunas
	payOrderTest(t, r, orderID, token, 100000, models.PaymentStatusBelumLunas)
	// Pelunasan sisanya
	payOrderTest(t, r, orderID, token, 32000, models.PaymentStatusLunas)

	productionFlowTest(t, r, orderID, token)

	salesReportTest(t, r, token)
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed data
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Customer{},
		&models.Bahan{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Expense{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Admin user untuk login
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     "admin",
	})

	// Customer level Retail dan satu bahan di katalog
	db.Create(&models.Customer{Name: "Budi", Level: models.LevelRetail})
	db.Create(&models.Bahan{
		Name:             "Flexi 280gr",
		HargaEndCustomer: 25000,
		HargaRetail:      22000,
		HargaGrosir:      20000,
		HargaReseller:    18000,
		HargaCorporate:   21000,
	})

	return db
}

func loginTest(t *testing.T, r *gin.Engine) string {
	body := map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.Token == "" {
		t.Fatalf("loginTest: no token, body=%s", w.Body.String())
	}
	return resp.Data.Token
}

// createOrderTest -> POST /api/orders => 201, total 22000 x (3x2) = 132000
func createOrderTest(t *testing.T, r *gin.Engine, token string) uint {
	bodyData := map[string]interface{}{
		"no_nota":      "N-2025-001",
		"tanggal":      "2025-03-01",
		"pelanggan_id": 1,
		"items": []map[string]interface{}{
			{
				"bahan_id":          1,
				"deskripsi_pesanan": "Spanduk grand opening",
				"panjang":           3,
				"lebar":             2,
				"qty":               1,
				"finishing":         "Mata ayam",
			},
		},
	}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("createOrderTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID               uint   `json:"id"`
			Total            string `json:"total"`
			StatusPembayaran string `json:"status_pembayaran"`
			StatusPesanan    string `json:"status_pesanan"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status {
		t.Fatalf("createOrderTest: status=false, body=%s", w.Body.String())
	}
	if resp.Data.Total != "132000" {
		t.Fatalf("createOrderTest: expected total 132000, got %s", resp.Data.Total)
	}
	if resp.Data.StatusPembayaran != models.PaymentStatusBelumLunas {
		t.Fatalf("createOrderTest: expected Belum Lunas, got %s", resp.Data.StatusPembayaran)
	}
	if resp.Data.StatusPesanan != models.OrderStatusPending {
		t.Fatalf("createOrderTest: expected Pending, got %s", resp.Data.StatusPesanan)
	}
	return resp.Data.ID
}

// payOrderTest -> POST /api/payments lalu cek status pelunasan hasil hitung
func payOrderTest(t *testing.T, r *gin.Engine, orderID uint, token string, amount int64, wantStatus string) {
	bodyData := map[string]interface{}{
		"order_id": orderID,
		"amount":   amount,
	}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("payOrderTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			StatusPembayaran string `json:"status_pembayaran"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status {
		t.Fatalf("payOrderTest: status=false, body=%s", w.Body.String())
	}
	if resp.Data.StatusPembayaran != wantStatus {
		t.Fatalf("payOrderTest: expected %s, got %s", wantStatus, resp.Data.StatusPembayaran)
	}
}

// productionFlowTest -> claim order, lalu item produksi sampai Selesai
func productionFlowTest(t *testing.T, r *gin.Engine, orderID uint, token string) {
	// Claim pekerjaan
	reqClaim := httptest.NewRequest(http.MethodPost,
		"/api/orders/"+uintToString(orderID)+"/process", nil)
	reqClaim.Header.Set("Authorization", "Bearer "+token)
	wClaim := httptest.NewRecorder()
	r.ServeHTTP(wClaim, reqClaim)
	if wClaim.Code != http.StatusOK {
		t.Fatalf("claim: code %d, body=%s", wClaim.Code, wClaim.Body.String())
	}

	// Claim kedua harus konflik
	reqAgain := httptest.NewRequest(http.MethodPost,
		"/api/orders/"+uintToString(orderID)+"/process", nil)
	reqAgain.Header.Set("Authorization", "Bearer "+token)
	wAgain := httptest.NewRecorder()
	r.ServeHTTP(wAgain, reqAgain)
	if wAgain.Code != http.StatusConflict {
		t.Fatalf("double claim: expected 409, got %d", wAgain.Code)
	}

	// Ambil item dari detail order
	reqGet := httptest.NewRequest(http.MethodGet,
		"/api/orders/"+uintToString(orderID), nil)
	reqGet.Header.Set("Authorization", "Bearer "+token)
	wGet := httptest.NewRecorder()
	r.ServeHTTP(wGet, reqGet)
	if wGet.Code != http.StatusOK {
		t.Fatalf("get order: code %d, body=%s", wGet.Code, wGet.Body.String())
	}

	var getResp struct {
		Status bool `json:"status"`
		Data   struct {
			StatusPesanan string `json:"status_pesanan"`
			OrderItems    []struct {
				ID             uint   `json:"id"`
				StatusProduksi string `json:"status_produksi"`
			} `json:"order_items"`
		} `json:"data"`
	}
	json.Unmarshal(wGet.Body.Bytes(), &getResp)
	if getResp.Data.StatusPesanan != models.OrderStatusProses {
		t.Fatalf("expected order Proses, got %s", getResp.Data.StatusPesanan)
	}
	if len(getResp.Data.OrderItems) < 1 {
		t.Fatalf("no order items in response")
	}
	itemID := getResp.Data.OrderItems[0].ID

	// Proses -> Selesai, satu langkah maju setiap kali
	for _, status := range []string{models.ProduksiProses, models.ProduksiSelesai} {
		body, _ := json.Marshal(map[string]string{"status": status})
		req := httptest.NewRequest(http.MethodPatch,
			"/api/order-items/"+uintToString(itemID)+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("item status %s: code %d, body=%s", status, w.Code, w.Body.String())
		}
	}

	// Mundur lagi ke Proses harus ditolak
	body, _ := json.Marshal(map[string]string{"status": models.ProduksiProses})
	reqBack := httptest.NewRequest(http.MethodPatch,
		"/api/order-items/"+uintToString(itemID)+"/status", bytes.NewBuffer(body))
	reqBack.Header.Set("Content-Type", "application/json")
	reqBack.Header.Set("Authorization", "Bearer "+token)
	wBack := httptest.NewRecorder()
	r.ServeHTTP(wBack, reqBack)
	if wBack.Code != http.StatusBadRequest {
		t.Fatalf("backward transition: expected 400, got %d", wBack.Code)
	}
}

// salesReportTest -> laporan penjualan memakai rumus harga yang sama
func salesReportTest(t *testing.T, r *gin.Engine, token string) {
	req := httptest.NewRequest(http.MethodGet, "/api/reports/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sales report: code %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			OrderCount int    `json:"order_count"`
			TotalSales string `json:"total_sales"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.OrderCount != 1 {
		t.Fatalf("sales report: expected 1 order, got %d", resp.Data.OrderCount)
	}
	if resp.Data.TotalSales != "132000" {
		t.Fatalf("sales report: expected 132000, got %s", resp.Data.TotalSales)
	}
}

func uintToString(num uint) string {
	return strconv.FormatUint(uint64(num), 10)
}
