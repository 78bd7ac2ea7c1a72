package services

import (
	"testing"
	"time"

	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	// Satu koneksi saja supaya in-memory database tidak terpecah
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Bahan{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	); err != nil {
		t.Fatal(err)
	}
	return db
}

// seedOrder membuat customer Retail + bahan + order 1 item pieces qty 4:
// total = 22000 x 1 x 4 = 88000
func seedOrder(t *testing.T, db *gorm.DB) models.Order {
	customer := models.Customer{Name: "Budi", Level: models.LevelRetail}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatal(err)
	}
	bahan := models.Bahan{
		Name:             "Flexi 280gr",
		HargaEndCustomer: 25000,
		HargaRetail:      22000,
		HargaGrosir:      20000,
		HargaReseller:    18000,
		HargaCorporate:   21000,
	}
	if err := db.Create(&bahan).Error; err != nil {
		t.Fatal(err)
	}
	order := models.Order{
		NoNota:      "N-001",
		Tanggal:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PelangganID: customer.ID,
		OrderItems:  []models.OrderItem{{BahanID: &bahan.ID, Qty: 4}},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
	return order
}

func TestSettlementStatus(t *testing.T) {
	total := decimal.NewFromInt(88000)

	assert.Equal(t, models.PaymentStatusBelumLunas, SettlementStatus(total, 0))
	assert.Equal(t, models.PaymentStatusBelumLunas, SettlementStatus(total, 87999))
	assert.Equal(t, models.PaymentStatusLunas, SettlementStatus(total, 88000))
	// Kelebihan bayar tetap Lunas
	assert.Equal(t, models.PaymentStatusLunas, SettlementStatus(total, 100000))
}

func TestBalanceRemaining(t *testing.T) {
	total := decimal.NewFromInt(88000)

	assert.True(t, decimal.NewFromInt(88000).Equal(BalanceRemaining(total, 0)))
	assert.True(t, decimal.NewFromInt(38000).Equal(BalanceRemaining(total, 50000)))
	// Kelebihan bayar: sisa 0, bukan negatif
	assert.True(t, decimal.Zero.Equal(BalanceRemaining(total, 100000)))
}

func TestAmountPaid(t *testing.T) {
	assert.Equal(t, int64(0), AmountPaid(nil))
	assert.Equal(t, int64(70000), AmountPaid([]models.Payment{
		{Amount: 50000}, {Amount: 20000},
	}))
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupLedgerTestDB(t)
	order := seedOrder(t, db)
	ledger := NewLedgerService(db)

	_, err := ledger.RecordPayment(order.ID, 0, time.Now(), nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = ledger.RecordPayment(order.ID, -500, time.Now(), nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Tidak ada yang tertulis
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRecordPaymentSettlement(t *testing.T) {
	db := setupLedgerTestDB(t)
	order := seedOrder(t, db)
	ledger := NewLedgerService(db)

	// DP 50000 dari total 88000: Belum Lunas
	_, err := ledger.RecordPayment(order.ID, 50000, time.Now(), nil)
	assert.NoError(t, err)

	var got models.Order
	db.First(&got, order.ID)
	assert.Equal(t, models.PaymentStatusBelumLunas, got.StatusPembayaran)

	// Pelunasan 38000: Lunas
	_, err = ledger.RecordPayment(order.ID, 38000, time.Now(), nil)
	assert.NoError(t, err)

	db.First(&got, order.ID)
	assert.Equal(t, models.PaymentStatusLunas, got.StatusPembayaran)
}

func TestRecordPaymentOverpayment(t *testing.T) {
	db := setupLedgerTestDB(t)
	order := seedOrder(t, db)
	ledger := NewLedgerService(db)

	// Bayar melebihi total sekaligus: diterima dan Lunas
	_, err := ledger.RecordPayment(order.ID, 200000, time.Now(), nil)
	assert.NoError(t, err)

	var got models.Order
	db.Preload("Payments").First(&got, order.ID)
	assert.Equal(t, models.PaymentStatusLunas, got.StatusPembayaran)
	assert.Equal(t, int64(200000), AmountPaid(got.Payments))
}

func TestRefreshRevertsLunasAfterItemEdit(t *testing.T) {
	db := setupLedgerTestDB(t)
	order := seedOrder(t, db)
	ledger := NewLedgerService(db)

	_, err := ledger.RecordPayment(order.ID, 88000, time.Now(), nil)
	assert.NoError(t, err)

	var got models.Order
	db.First(&got, order.ID)
	assert.Equal(t, models.PaymentStatusLunas, got.StatusPembayaran)

	// Tambah qty item sehingga total naik jadi 110000
	var item models.OrderItem
	db.Where("order_id = ?", order.ID).First(&item)
	item.Qty = 5
	assert.NoError(t, db.Save(&item).Error)

	assert.NoError(t, ledger.RefreshPaymentStatus(order.ID))

	db.First(&got, order.ID)
	assert.Equal(t, models.PaymentStatusBelumLunas, got.StatusPembayaran)
}

func TestRefreshAllPaymentStatuses(t *testing.T) {
	db := setupLedgerTestDB(t)
	order := seedOrder(t, db)
	ledger := NewLedgerService(db)

	// Simulasi drift: status tersimpan Lunas padahal ledger kosong
	db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status_pembayaran", models.PaymentStatusLunas)

	fixed, err := ledger.RefreshAllPaymentStatuses()
	assert.NoError(t, err)
	assert.Equal(t, 1, fixed)

	var got models.Order
	db.First(&got, order.ID)
	assert.Equal(t, models.PaymentStatusBelumLunas, got.StatusPembayaran)
}
