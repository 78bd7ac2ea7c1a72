package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

type ExpenseController struct {
	DB *gorm.DB
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

type expenseRequest struct {
	Tanggal          string `json:"tanggal" binding:"required"` // YYYY-MM-DD
	JenisPengeluaran string `json:"jenis_pengeluaran" binding:"required"`
	Qty              int    `json:"qty"`
	Harga            int64  `json:"harga"`
}

func (r expenseRequest) parse() (models.Expense, error) {
	tanggal, err := time.Parse("2006-01-02", r.Tanggal)
	if err != nil {
		return models.Expense{}, ErrInvalidDate
	}
	if r.Qty < 1 {
		return models.Expense{}, ErrInvalidQty
	}
	if r.Harga < 0 {
		return models.Expense{}, ErrNegativePrice
	}
	return models.Expense{
		Tanggal:          tanggal,
		JenisPengeluaran: r.JenisPengeluaran,
		Qty:              r.Qty,
		Harga:            r.Harga,
	}, nil
}

// GetAllExpenses -> daftar pengeluaran, opsional filter rentang tanggal
func (xc *ExpenseController) GetAllExpenses(c *gin.Context) {
	q := xc.DB.Model(&models.Expense{})
	if start := c.Query("start"); start != "" {
		q = q.Where("tanggal >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		q = q.Where("tanggal <= ?", end)
	}

	var expenses []models.Expense
	if err := q.Order("tanggal DESC, id DESC").Find(&expenses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of expenses", expenses)
}

// CreateExpense -> Mencatat pengeluaran baru
func (xc *ExpenseController) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	expense, err := req.parse()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := xc.DB.Create(&expense).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New expense recorded (ID=%d, jumlah=%s)",
		expense.ID, utils.FormatRupiah(int64(expense.Qty)*expense.Harga))

	utils.RespondJSON(c, http.StatusCreated, "Expense created", expense)
}

// GetExpenseByID -> detail 1 pengeluaran
func (xc *ExpenseController) GetExpenseByID(c *gin.Context) {
	idStr := c.Param("expense_id")
	id, _ := strconv.Atoi(idStr)

	var expense models.Expense
	if err := xc.DB.First(&expense, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Expense detail", expense)
}

// UpdateExpense -> Update baris pengeluaran
func (xc *ExpenseController) UpdateExpense(c *gin.Context) {
	idStr := c.Param("expense_id")
	id, _ := strconv.Atoi(idStr)

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	parsed, err := req.parse()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var expense models.Expense
	if err := xc.DB.First(&expense, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	expense.Tanggal = parsed.Tanggal
	expense.JenisPengeluaran = parsed.JenisPengeluaran
	expense.Qty = parsed.Qty
	expense.Harga = parsed.Harga

	if err := xc.DB.Save(&expense).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Expense updated", expense)
}

// DeleteExpense -> Menghapus baris pengeluaran
func (xc *ExpenseController) DeleteExpense(c *gin.Context) {
	idStr := c.Param("expense_id")
	id, _ := strconv.Atoi(idStr)

	if err := xc.DB.Delete(&models.Expense{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Expense deleted", gin.H{"expense_id": id})
}

var (
	ErrInvalidDate = &CustomError{"Format tanggal harus YYYY-MM-DD"}
	ErrInvalidQty  = &CustomError{"Qty minimal 1"}
)
