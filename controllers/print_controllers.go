package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/services"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

// PrintController merender nota (bukti transaksi untuk customer) dan SPK
// (surat perintah kerja untuk produksi) sebagai PDF. Semua angka diambil
// dari pricing/ledger service, tidak pernah dihitung ulang di sini.
type PrintController struct {
	DB      *gorm.DB
	Pricing *services.PricingService
}

func NewPrintController(db *gorm.DB) *PrintController {
	return &PrintController{DB: db, Pricing: services.NewPricingService(db)}
}

func (pc *PrintController) loadOrder(c *gin.Context) (*models.Order, bool) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := pc.DB.Preload("OrderItems").Preload("OrderItems.Bahan").
		Preload("Payments").Preload("Pelanggan").Preload("Pelaksana").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}
	return &order, true
}

// PrintNota -> PDF nota dengan rincian item, total, terbayar, dan sisa
func (pc *PrintController) PrintNota(c *gin.Context) {
	order, ok := pc.loadOrder(c)
	if !ok {
		return
	}

	total, err := pc.Pricing.OrderTotalFromDB(*order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	paid := services.AmountPaid(order.Payments)
	balance := services.BalanceRemaining(total, paid)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "NOTA", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("No Nota : %s", order.NoNota), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Tanggal : %s", order.Tanggal.Format("02-01-2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Customer: %s (%s)", order.Pelanggan.Name, order.Pelanggan.Level), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Header tabel item
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(70, 7, "Deskripsi", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Bahan", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Ukuran", "1", 0, "C", false, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Subtotal", "1", 1, "R", false, 0, "")

	bahanByID, err := pc.Pricing.BahanCatalog()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.OrderItems {
		bahanName := "-"
		subtotal := "0"
		if item.BahanID != nil {
			if bahan, ok := bahanByID[*item.BahanID]; ok {
				bahanName = bahan.Name
				subtotal = services.ItemSubtotal(bahan, order.Pelanggan.Level, item).String()
			}
		}
		ukuran := "-"
		if item.Panjang.IsPositive() && item.Lebar.IsPositive() {
			ukuran = fmt.Sprintf("%s x %s", item.Panjang.String(), item.Lebar.String())
		}
		pdf.CellFormat(70, 7, item.DeskripsiPesanan, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, bahanName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, ukuran, "1", 0, "C", false, 0, "")
		pdf.CellFormat(15, 7, strconv.Itoa(item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, subtotal, "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total    : %s", utils.FormatRupiahDecimal(total)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Terbayar : %s", utils.FormatRupiah(paid)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Sisa     : %s", utils.FormatRupiahDecimal(balance)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status   : %s", order.StatusPembayaran), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Terima kasih atas kepercayaan Anda.", "", 1, "C", false, 0, "")

	pc.servePDF(c, pdf, fmt.Sprintf("nota-%s.pdf", order.NoNota))
}

// PrintSPK -> PDF surat perintah kerja untuk tim produksi, tanpa harga
func (pc *PrintController) PrintSPK(c *gin.Context) {
	order, ok := pc.loadOrder(c)
	if !ok {
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "SURAT PERINTAH KERJA", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("No Nota : %s", order.NoNota), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Tanggal : %s", order.Tanggal.Format("02-01-2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Customer: %s", order.Pelanggan.Name), "", 1, "L", false, 0, "")
	pelaksana := "-"
	if order.Pelaksana != nil {
		pelaksana = order.Pelaksana.Name
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Pelaksana: %s", pelaksana), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(65, 7, "Deskripsi", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Bahan", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Ukuran", "1", 0, "C", false, 0, "")
	pdf.CellFormat(12, 7, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Finishing", "1", 0, "L", false, 0, "")
	pdf.CellFormat(28, 7, "Status", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.OrderItems {
		bahanName := "-"
		if item.Bahan != nil {
			bahanName = item.Bahan.Name
		}
		ukuran := "-"
		if item.Panjang.IsPositive() && item.Lebar.IsPositive() {
			ukuran = fmt.Sprintf("%s x %s", item.Panjang.String(), item.Lebar.String())
		}
		pdf.CellFormat(65, 7, item.DeskripsiPesanan, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, bahanName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, ukuran, "1", 0, "C", false, 0, "")
		pdf.CellFormat(12, 7, strconv.Itoa(item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, item.Finishing, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 7, item.StatusProduksi, "1", 1, "C", false, 0, "")
	}

	pc.servePDF(c, pdf, fmt.Sprintf("spk-%s.pdf", order.NoNota))
}

func (pc *PrintController) servePDF(c *gin.Context, pdf *fpdf.Fpdf, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", filename))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Error rendering PDF %s: %v", filename, err)
	}
}
