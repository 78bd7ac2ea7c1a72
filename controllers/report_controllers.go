package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/services"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB      *gorm.DB
	Reports *services.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Reports: services.NewReportService(db)}
}

// GetSalesReport -> laporan penjualan per order (?start&end&customer_id&status)
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	report, err := rc.Reports.Sales(filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Sales report", report)
}

// GetExpenseReport -> laporan pengeluaran (?start&end)
func (rc *ReportController) GetExpenseReport(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	report, err := rc.Reports.Expenses(filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Expense report", report)
}

// GetTopCustomers -> customer dengan belanja terbesar (?limit, default 10)
func (rc *ReportController) GetTopCustomers(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	report, err := rc.Reports.TopCustomers(filter, limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Top customers", report)
}

// GetBestMaterials -> bahan dengan pendapatan terbesar (?limit, default 10)
func (rc *ReportController) GetBestMaterials(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	report, err := rc.Reports.BestMaterials(filter, limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Best materials", report)
}

// ExportReport -> unduh laporan sebagai CSV (kind: sales|expenses)
func (rc *ReportController) ExportReport(c *gin.Context) {
	kind := c.Param("kind")
	filter, err := parseReportFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=laporan-%s.csv", kind))
	w := csv.NewWriter(c.Writer)

	switch kind {
	case "sales":
		report, err := rc.Reports.Sales(filter)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		w.Write([]string{"No Nota", "Tanggal", "Customer", "Status Pembayaran", "Total"})
		for _, row := range report.Rows {
			w.Write([]string{
				row.NoNota,
				row.Tanggal.Format("2006-01-02"),
				row.CustomerName,
				row.StatusPembayaran,
				row.Total.String(),
			})
		}
		w.Write([]string{"", "", "", "TOTAL", report.TotalSales.String()})
	case "expenses":
		report, err := rc.Reports.Expenses(filter)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		w.Write([]string{"Tanggal", "Jenis Pengeluaran", "Qty", "Harga", "Jumlah"})
		for _, row := range report.Rows {
			w.Write([]string{
				row.Tanggal.Format("2006-01-02"),
				row.JenisPengeluaran,
				strconv.Itoa(row.Qty),
				strconv.FormatInt(row.Harga, 10),
				strconv.FormatInt(row.Jumlah, 10),
			})
		}
		w.Write([]string{"", "", "", "TOTAL", strconv.FormatInt(report.TotalExpense, 10)})
	default:
		utils.RespondError(c, http.StatusBadRequest, ErrUnknownReport)
		return
	}

	w.Flush()
}

var ErrUnknownReport = &CustomError{"Jenis laporan tidak dikenal"}
