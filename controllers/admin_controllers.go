package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/services"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB      *gorm.DB
	Reports *services.ReportService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db, Reports: services.NewReportService(db)}
}

// GetDashboardStats -> kartu statistik halaman utama (khusus admin)
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found"))
		return
	}
	if roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	stats, err := ac.Reports.Dashboard()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetFinanceSummary -> ringkasan penjualan, kas masuk, pengeluaran, piutang
func (ac *AdminController) GetFinanceSummary(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	summary, err := ac.Reports.Summary(filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Finance summary", summary)
}

// GetCashflow -> kas masuk/keluar per hari, default 30 hari terakhir
func (ac *AdminController) GetCashflow(c *gin.Context) {
	days := 30
	if d := c.Query("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			utils.RespondError(c, http.StatusBadRequest, ErrInvalidDays)
			return
		}
		days = parsed
	}

	cashflow, err := ac.Reports.Cashflow(days)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cashflow", cashflow)
}

// GetReceivables -> total piutang order yang belum lunas
func (ac *AdminController) GetReceivables(c *gin.Context) {
	receivables, err := ac.Reports.Receivables()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Receivables", gin.H{"receivables": receivables})
}

func parseReportFilter(c *gin.Context) (services.ReportFilter, error) {
	var filter services.ReportFilter

	if start := c.Query("start"); start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.Start = parsed
	}
	if end := c.Query("end"); end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.End = parsed
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := strconv.Atoi(customerID)
		if err != nil || id < 1 {
			return filter, ErrInvalidCustomerID
		}
		filter.CustomerID = uint(id)
	}
	if status := c.Query("status"); status != "" {
		filter.Status = status
	}
	return filter, nil
}

var (
	ErrInvalidDays       = &CustomError{"Parameter days tidak valid"}
	ErrInvalidCustomerID = &CustomError{"Parameter customer_id tidak valid"}
)
