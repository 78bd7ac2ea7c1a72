package services

import (
	"errors"
	"time"

	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount = errors.New("jumlah pembayaran harus lebih dari 0")
	ErrOrderNotFound = errors.New("order tidak ditemukan")
)

// LedgerService mengelola pembayaran dan status pelunasan order.
// status_pembayaran selalu diturunkan dari ledger, tidak pernah di-set
// langsung oleh client.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// AmountPaid menjumlahkan seluruh pembayaran order. Tanpa pembayaran = 0.
func AmountPaid(payments []models.Payment) int64 {
	var paid int64
	for _, p := range payments {
		paid += p.Amount
	}
	return paid
}

// BalanceRemaining = total - paid, minimal 0 (kelebihan bayar tidak
// menghasilkan saldo negatif).
func BalanceRemaining(total decimal.Decimal, paid int64) decimal.Decimal {
	balance := total.Sub(decimal.NewFromInt(paid))
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// SettlementStatus: paid >= total berarti Lunas, selain itu Belum Lunas.
func SettlementStatus(total decimal.Decimal, paid int64) string {
	if decimal.NewFromInt(paid).GreaterThanOrEqual(total) {
		return models.PaymentStatusLunas
	}
	return models.PaymentStatusBelumLunas
}

// RecordPayment menambahkan pembayaran lalu menghitung ulang status
// pelunasan dalam satu transaksi. Amount <= 0 ditolak sebelum menulis.
func (s *LedgerService) RecordPayment(orderID uint, amount int64, date time.Time, kasirID *uint) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var payment *models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}

		payment = &models.Payment{
			OrderID:     orderID,
			Amount:      amount,
			PaymentDate: date,
			KasirID:     kasirID,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return s.refreshStatusTx(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// RefreshPaymentStatus menghitung ulang dan menyimpan status_pembayaran
// sebuah order. Panggil setelah setiap mutasi yang mengubah total atau
// ledger (buat/edit order, insert pembayaran, hapus pembayaran).
func (s *LedgerService) RefreshPaymentStatus(orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.refreshStatusTx(tx, orderID)
	})
}

func (s *LedgerService) refreshStatusTx(tx *gorm.DB, orderID uint) error {
	var order models.Order
	if err := tx.Preload("OrderItems").Preload("Payments").First(&order, orderID).Error; err != nil {
		return err
	}

	pricing := &PricingService{DB: tx}
	total, err := pricing.OrderTotalFromDB(order)
	if err != nil {
		return err
	}

	status := SettlementStatus(total, AmountPaid(order.Payments))
	if status == order.StatusPembayaran {
		return nil
	}

	utils.InfoLogger.Printf("Order %s: status pembayaran %s -> %s",
		order.NoNota, order.StatusPembayaran, status)
	return tx.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status_pembayaran", status).Error
}

// RefreshAllPaymentStatuses menyisir seluruh order dan memperbaiki status
// pelunasan yang sudah tidak sesuai ledger. Dipanggil saat boot.
func (s *LedgerService) RefreshAllPaymentStatuses() (int, error) {
	type row struct {
		ID               uint
		StatusPembayaran string
	}
	var rows []row
	if err := s.DB.Model(&models.Order{}).
		Select("id", "status_pembayaran").Scan(&rows).Error; err != nil {
		return 0, err
	}

	fixed := 0
	for _, r := range rows {
		if err := s.RefreshPaymentStatus(r.ID); err != nil {
			return fixed, err
		}
		var after row
		if err := s.DB.Model(&models.Order{}).
			Select("id", "status_pembayaran").
			Where("id = ?", r.ID).Scan(&after).Error; err != nil {
			return fixed, err
		}
		if after.StatusPembayaran != r.StatusPembayaran {
			fixed++
		}
	}
	return fixed, nil
}
