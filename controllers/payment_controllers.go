package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nalaku/printshop-app/events"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/services"
	"github.com/nalaku/printshop-app/utils"
)

type PaymentController struct {
	DB     *gorm.DB
	Ledger *services.LedgerService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:     db,
		Ledger: services.NewLedgerService(db),
	}
}

// GetAllPayments -> seluruh ledger, terbaru dulu
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	var payments []models.Payment
	if err := pc.DB.Preload("Kasir").Order("payment_date DESC, id DESC").
		Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All payments", payments)
}

// GetPaymentsByOrder -> riwayat pembayaran 1 order
func (pc *PaymentController) GetPaymentsByOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var payments []models.Payment
	if err := pc.DB.Where("order_id = ?", id).Order("payment_date ASC, id ASC").
		Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payments for order", payments)
}

// CreatePayment -> kasir mencatat pembayaran (DP atau pelunasan).
// Jumlah <= 0 ditolak sebelum menulis; status pelunasan order dihitung
// ulang dalam transaksi yang sama. Kelebihan bayar dibolehkan.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	type reqBody struct {
		OrderID     uint   `json:"order_id" binding:"required"`
		Amount      int64  `json:"amount"`
		PaymentDate string `json:"payment_date"` // YYYY-MM-DD, default hari ini
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	paymentDate := time.Now()
	if body.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, ErrInvalidDate)
			return
		}
		paymentDate = parsed
	}

	var kasirID *uint
	if userIDInterface, exists := c.Get("user_id"); exists {
		if userID, ok := userIDInterface.(uint); ok {
			kasirID = &userID
		}
	}

	payment, err := pc.Ledger.RecordPayment(body.OrderID, body.Amount, paymentDate, kasirID)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			utils.RespondError(c, http.StatusBadRequest, err)
		case services.ErrOrderNotFound:
			utils.RespondError(c, http.StatusNotFound, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	var order models.Order
	if err := pc.DB.Preload("Payments").First(&order, body.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Payment recorded (ID=%d, order=%d, amount=%s, status=%s)",
		payment.ID, order.ID, utils.FormatRupiah(payment.Amount), order.StatusPembayaran)
	events.BroadcastPaymentUpdate(*payment, order)

	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", gin.H{
		"payment":           payment,
		"status_pembayaran": order.StatusPembayaran,
	})
}

// GetPaymentByID -> detail 1 pembayaran
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	idStr := c.Param("payment_id")
	id, _ := strconv.Atoi(idStr)

	var payment models.Payment
	if err := pc.DB.Preload("Kasir").First(&payment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// DeletePayment -> hapus 1 baris ledger lalu hitung ulang status
// pelunasan order. Order Lunas bisa kembali Belum Lunas.
func (pc *PaymentController) DeletePayment(c *gin.Context) {
	idStr := c.Param("payment_id")
	id, _ := strconv.Atoi(idStr)

	var payment models.Payment
	if err := pc.DB.First(&payment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Delete(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := pc.Ledger.RefreshPaymentStatus(payment.OrderID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, payment.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	events.BroadcastPaymentUpdate(payment, order)

	utils.RespondJSON(c, http.StatusOK, "Payment deleted", gin.H{
		"payment_id":        id,
		"status_pembayaran": order.StatusPembayaran,
	})
}
