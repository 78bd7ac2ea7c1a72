package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/events"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/services"
	"github.com/nalaku/printshop-app/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderController struct {
	DB      *gorm.DB
	Pricing *services.PricingService
	Ledger  *services.LedgerService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:      db,
		Pricing: services.NewPricingService(db),
		Ledger:  services.NewLedgerService(db),
	}
}

type orderItemRequest struct {
	BahanID          *uint           `json:"bahan_id"`
	DeskripsiPesanan string          `json:"deskripsi_pesanan"`
	Panjang          decimal.Decimal `json:"panjang"`
	Lebar            decimal.Decimal `json:"lebar"`
	Qty              int             `json:"qty"`
	Finishing        string          `json:"finishing"`
}

type orderRequest struct {
	NoNota      string             `json:"no_nota" binding:"required"`
	Tanggal     string             `json:"tanggal" binding:"required"` // YYYY-MM-DD
	PelangganID uint               `json:"pelanggan_id" binding:"required"`
	Items       []orderItemRequest `json:"items" binding:"required"`
}

func (r orderRequest) validate() (time.Time, error) {
	tanggal, err := time.Parse("2006-01-02", r.Tanggal)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if len(r.Items) == 0 {
		return time.Time{}, ErrNoItems
	}
	for _, item := range r.Items {
		if item.Qty < 1 {
			return time.Time{}, ErrInvalidQty
		}
		if item.Panjang.IsNegative() || item.Lebar.IsNegative() {
			return time.Time{}, ErrNegativeDimension
		}
	}
	return tanggal, nil
}

// orderView menyertakan angka turunan supaya daftar order langsung
// menampilkan total, terbayar, dan sisa tanpa hitung di client.
type orderView struct {
	models.Order
	Total   decimal.Decimal `json:"total"`
	Paid    int64           `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
}

func (oc *OrderController) view(order models.Order) (orderView, error) {
	total, err := oc.Pricing.OrderTotalFromDB(order)
	if err != nil {
		return orderView{}, err
	}
	paid := services.AmountPaid(order.Payments)
	return orderView{
		Order:   order,
		Total:   total,
		Paid:    paid,
		Balance: services.BalanceRemaining(total, paid),
	}, nil
}

// GetAllOrders -> semua order lengkap dengan item, pembayaran, dan total
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	q := oc.DB.Preload("OrderItems").Preload("Payments").
		Preload("Pelanggan").Preload("Pelaksana")
	if status := c.Query("status_pesanan"); status != "" {
		q = q.Where("status_pesanan = ?", status)
	}
	if status := c.Query("status_pembayaran"); status != "" {
		q = q.Where("status_pembayaran = ?", status)
	}

	var orders []models.Order
	if err := q.Order("tanggal DESC, id DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		v, err := oc.view(order)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		views = append(views, v)
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", views)
}

// CreateOrder -> Membuat order baru dengan minimal 1 item. Status
// pembayaran langsung diturunkan dari ledger yang masih kosong.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tanggal, err := req.validate()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := oc.DB.First(&customer, req.PelangganID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order := models.Order{
		NoNota:      req.NoNota,
		Tanggal:     tanggal,
		PelangganID: req.PelangganID,
	}
	for _, item := range req.Items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			BahanID:          item.BahanID,
			DeskripsiPesanan: item.DeskripsiPesanan,
			Panjang:          item.Panjang,
			Lebar:            item.Lebar,
			Qty:              item.Qty,
			Finishing:        item.Finishing,
		})
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.Ledger.RefreshPaymentStatus(order.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.DB.Preload("OrderItems").Preload("Payments").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("New order created (ID=%d, nota=%s, items=%d)",
		order.ID, order.NoNota, len(order.OrderItems))
	events.BroadcastOrderUpdate(order)

	v, err := oc.view(order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", v)
}

// GetOrderByID -> detail 1 order dengan angka turunan
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Payments").
		Preload("Pelanggan").Preload("Pelaksana").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	v, err := oc.view(order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", v)
}

// UpdateOrder -> Update header + ganti seluruh item (hapus semua, insert
// ulang) dalam satu transaksi, lalu hitung ulang status pelunasan. Edit
// yang menaikkan total bisa mengembalikan order Lunas jadi Belum Lunas.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tanggal, err := req.validate()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		order.NoNota = req.NoNota
		order.Tanggal = tanggal
		order.PelangganID = req.PelangganID
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			newItem := models.OrderItem{
				OrderID:          order.ID,
				BahanID:          item.BahanID,
				DeskripsiPesanan: item.DeskripsiPesanan,
				Panjang:          item.Panjang,
				Lebar:            item.Lebar,
				Qty:              item.Qty,
				Finishing:        item.Finishing,
			}
			if err := tx.Create(&newItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.Ledger.RefreshPaymentStatus(order.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.DB.Preload("OrderItems").Preload("Payments").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	events.BroadcastOrderUpdate(order)

	v, err := oc.view(order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", v)
}

// DeleteOrder -> Menghapus order beserta item dan pembayarannya
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order deleted (ID=%d, nota=%s)", order.ID, order.NoNota)
	events.BroadcastOrderDelete(order.ID)

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}

// ProcessOrder -> pelaksana mengambil pekerjaan. Hanya order Pending
// tanpa pelaksana yang bisa diambil; status dan pelaksana di-set dalam
// satu update supaya tidak ada yang mengambil dua kali.
func (oc *OrderController) ProcessOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	result := oc.DB.Model(&models.Order{}).
		Where("id = ? AND status_pesanan = ? AND pelaksana_id IS NULL", id, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status_pesanan": models.OrderStatusProses,
			"pelaksana_id":   userID,
		})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict, ErrOrderTaken)
		return
	}

	if err := oc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Printf("Order %d claimed by user %d", order.ID, userID)
	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order claimed", order)
}

// ReleaseJob -> pelaksana melepas pekerjaan. Hanya pelaksana_id yang
// dikosongkan; status pesanan tetap Proses.
func (oc *OrderController) ReleaseJob(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.PelaksanaID == nil {
		utils.RespondError(c, http.StatusConflict, ErrNotClaimed)
		return
	}

	if err := oc.DB.Model(&order).Update("pelaksana_id", nil).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d released", order.ID)
	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Job released", gin.H{"order_id": order.ID})
}

var produksiRank = map[string]int{
	models.ProduksiBelumDikerjakan: 0,
	models.ProduksiProses:          1,
	models.ProduksiSelesai:         2,
}

// UpdateItemStatus -> ganti status produksi 1 item. Transisi hanya boleh
// maju (boleh lompat Belum Dikerjakan -> Selesai); mundur ditolak.
func (oc *OrderController) UpdateItemStatus(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	newRank, ok := produksiRank[req.Status]
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidStatus)
		return
	}

	var item models.OrderItem
	if err := oc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if newRank < produksiRank[item.StatusProduksi] {
		utils.RespondError(c, http.StatusBadRequest, ErrBackwardTransition)
		return
	}

	item.StatusProduksi = req.Status
	if err := oc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order item %d production status -> %s", item.ID, item.StatusProduksi)
	events.BroadcastProductionUpdate(item)

	utils.RespondJSON(c, http.StatusOK, "Item status updated", item)
}

// GetOrderTotal -> total, terbayar, dan sisa 1 order
func (oc *OrderController) GetOrderTotal(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Payments").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	total, err := oc.Pricing.OrderTotalFromDB(order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	paid := services.AmountPaid(order.Payments)

	utils.RespondJSON(c, http.StatusOK, "Order total", gin.H{
		"order_id":          order.ID,
		"total":             total,
		"paid":              paid,
		"balance":           services.BalanceRemaining(total, paid),
		"status_pembayaran": order.StatusPembayaran,
	})
}

var (
	ErrNoItems            = &CustomError{"Order harus punya minimal 1 item"}
	ErrNegativeDimension  = &CustomError{"Panjang/lebar tidak boleh negatif"}
	ErrOrderTaken         = &CustomError{"Order sudah diambil atau bukan Pending"}
	ErrNotClaimed         = &CustomError{"Order belum punya pelaksana"}
	ErrInvalidStatus      = &CustomError{"Status produksi tidak dikenal"}
	ErrBackwardTransition = &CustomError{"Status produksi tidak boleh mundur"}
)
