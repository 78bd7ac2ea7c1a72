package services

import (
	"sort"
	"time"

	"github.com/nalaku/printshop-app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService merangkum data order, pembayaran, dan pengeluaran menjadi
// laporan. Semua angka penjualan memakai rumus total yang sama dengan
// PricingService supaya laporan tidak pernah beda dengan nota.
type ReportService struct {
	DB      *gorm.DB
	Pricing *PricingService
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Pricing: NewPricingService(db)}
}

type SalesRow struct {
	OrderID          uint            `json:"order_id"`
	NoNota           string          `json:"no_nota"`
	Tanggal          time.Time       `json:"tanggal"`
	CustomerName     string          `json:"customer_name"`
	StatusPembayaran string          `json:"status_pembayaran"`
	Total            decimal.Decimal `json:"total"`
}

type SalesReport struct {
	Rows       []SalesRow      `json:"rows"`
	OrderCount int             `json:"order_count"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type ExpenseRow struct {
	ID               uint      `json:"id"`
	Tanggal          time.Time `json:"tanggal"`
	JenisPengeluaran string    `json:"jenis_pengeluaran"`
	Qty              int       `json:"qty"`
	Harga            int64     `json:"harga"`
	Jumlah           int64     `json:"jumlah"`
}

type ExpenseReport struct {
	Rows         []ExpenseRow `json:"rows"`
	TotalExpense int64        `json:"total_expense"`
}

type CustomerSpend struct {
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Level        string          `json:"level"`
	OrderCount   int             `json:"order_count"`
	TotalSpend   decimal.Decimal `json:"total_spend"`
}

type MaterialRevenue struct {
	BahanID   uint            `json:"bahan_id"`
	BahanName string          `json:"bahan_name"`
	Qty       int             `json:"qty"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CashflowDay struct {
	Date    string          `json:"date"`
	In      int64           `json:"in"`
	Out     int64           `json:"out"`
	Net     decimal.Decimal `json:"net"`
}

type FinanceSummary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalReceived int64           `json:"total_received"`
	TotalExpense  int64           `json:"total_expense"`
	Receivables   decimal.Decimal `json:"receivables"`
}

// ReportFilter membatasi rentang tanggal (inklusif) dan opsional per
// customer atau status pembayaran. Zero value berarti tanpa filter.
type ReportFilter struct {
	Start      time.Time
	End        time.Time
	CustomerID uint
	Status     string
}

func (f ReportFilter) apply(q *gorm.DB) *gorm.DB {
	if !f.Start.IsZero() {
		q = q.Where("tanggal >= ?", f.Start)
	}
	if !f.End.IsZero() {
		q = q.Where("tanggal <= ?", f.End)
	}
	return q
}

func (s *ReportService) ordersFor(filter ReportFilter) ([]models.Order, map[uint]models.Customer, map[uint]models.Bahan, error) {
	q := filter.apply(s.DB.Preload("OrderItems").Preload("Payments"))
	if filter.CustomerID != 0 {
		q = q.Where("pelanggan_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status_pembayaran = ?", filter.Status)
	}

	var orders []models.Order
	if err := q.Order("tanggal ASC, id ASC").Find(&orders).Error; err != nil {
		return nil, nil, nil, err
	}

	var customers []models.Customer
	if err := s.DB.Find(&customers).Error; err != nil {
		return nil, nil, nil, err
	}
	customerByID := make(map[uint]models.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.ID] = c
	}

	bahanByID, err := s.Pricing.BahanCatalog()
	if err != nil {
		return nil, nil, nil, err
	}
	return orders, customerByID, bahanByID, nil
}

func orderTotalWith(order models.Order, customerByID map[uint]models.Customer, bahanByID map[uint]models.Bahan) decimal.Decimal {
	var customer *models.Customer
	if c, ok := customerByID[order.PelangganID]; ok {
		customer = &c
	}
	return OrderTotal(order, customer, bahanByID)
}

// Sales menghasilkan laporan penjualan: satu baris per order plus jumlah
// order dan total penjualan.
func (s *ReportService) Sales(filter ReportFilter) (*SalesReport, error) {
	orders, customerByID, bahanByID, err := s.ordersFor(filter)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{Rows: make([]SalesRow, 0, len(orders)), TotalSales: decimal.Zero}
	for _, order := range orders {
		total := orderTotalWith(order, customerByID, bahanByID)
		name := ""
		if c, ok := customerByID[order.PelangganID]; ok {
			name = c.Name
		}
		report.Rows = append(report.Rows, SalesRow{
			OrderID:          order.ID,
			NoNota:           order.NoNota,
			Tanggal:          order.Tanggal,
			CustomerName:     name,
			StatusPembayaran: order.StatusPembayaran,
			Total:            total,
		})
		report.TotalSales = report.TotalSales.Add(total)
	}
	report.OrderCount = len(report.Rows)
	return report, nil
}

// Expenses menghasilkan laporan pengeluaran, jumlah per baris = qty x harga.
func (s *ReportService) Expenses(filter ReportFilter) (*ExpenseReport, error) {
	var expenses []models.Expense
	q := filter.apply(s.DB.Model(&models.Expense{}))
	if err := q.Order("tanggal ASC, id ASC").Find(&expenses).Error; err != nil {
		return nil, err
	}

	report := &ExpenseReport{Rows: make([]ExpenseRow, 0, len(expenses))}
	for _, e := range expenses {
		jumlah := int64(e.Qty) * e.Harga
		report.Rows = append(report.Rows, ExpenseRow{
			ID:               e.ID,
			Tanggal:          e.Tanggal,
			JenisPengeluaran: e.JenisPengeluaran,
			Qty:              e.Qty,
			Harga:            e.Harga,
			Jumlah:           jumlah,
		})
		report.TotalExpense += jumlah
	}
	return report, nil
}

// TopCustomers mengurutkan customer berdasarkan total belanja, terbesar dulu.
func (s *ReportService) TopCustomers(filter ReportFilter, limit int) ([]CustomerSpend, error) {
	orders, customerByID, bahanByID, err := s.ordersFor(filter)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[uint]*CustomerSpend)
	for _, order := range orders {
		total := orderTotalWith(order, customerByID, bahanByID)
		entry, ok := byCustomer[order.PelangganID]
		if !ok {
			c := customerByID[order.PelangganID]
			entry = &CustomerSpend{
				CustomerID:   order.PelangganID,
				CustomerName: c.Name,
				Level:        c.Level,
				TotalSpend:   decimal.Zero,
			}
			byCustomer[order.PelangganID] = entry
		}
		entry.OrderCount++
		entry.TotalSpend = entry.TotalSpend.Add(total)
	}

	result := make([]CustomerSpend, 0, len(byCustomer))
	for _, entry := range byCustomer {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].TotalSpend.Equal(result[j].TotalSpend) {
			return result[i].TotalSpend.GreaterThan(result[j].TotalSpend)
		}
		return result[i].CustomerID < result[j].CustomerID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// BestMaterials mengurutkan bahan berdasarkan pendapatan (rumus subtotal
// item yang sama dengan total order), terbesar dulu.
func (s *ReportService) BestMaterials(filter ReportFilter, limit int) ([]MaterialRevenue, error) {
	orders, customerByID, bahanByID, err := s.ordersFor(filter)
	if err != nil {
		return nil, err
	}

	byBahan := make(map[uint]*MaterialRevenue)
	for _, order := range orders {
		customer, ok := customerByID[order.PelangganID]
		if !ok {
			continue
		}
		for _, item := range order.OrderItems {
			if item.BahanID == nil {
				continue
			}
			bahan, ok := bahanByID[*item.BahanID]
			if !ok {
				continue
			}
			entry, ok := byBahan[bahan.ID]
			if !ok {
				entry = &MaterialRevenue{BahanID: bahan.ID, BahanName: bahan.Name, Revenue: decimal.Zero}
				byBahan[bahan.ID] = entry
			}
			entry.Qty += item.Qty
			entry.Revenue = entry.Revenue.Add(ItemSubtotal(bahan, customer.Level, item))
		}
	}

	result := make([]MaterialRevenue, 0, len(byBahan))
	for _, entry := range byBahan {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].BahanID < result[j].BahanID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Receivables menjumlahkan piutang: untuk setiap order yang belum Lunas,
// total dikurangi pembayaran, minimal 0 per order.
func (s *ReportService) Receivables() (decimal.Decimal, error) {
	orders, customerByID, bahanByID, err := s.ordersFor(ReportFilter{Status: models.PaymentStatusBelumLunas})
	if err != nil {
		return decimal.Zero, err
	}

	receivables := decimal.Zero
	for _, order := range orders {
		total := orderTotalWith(order, customerByID, bahanByID)
		receivables = receivables.Add(BalanceRemaining(total, AmountPaid(order.Payments)))
	}
	return receivables, nil
}

// Cashflow mengelompokkan kas masuk (pembayaran) dan keluar (pengeluaran)
// per tanggal untuk `days` hari terakhir, urut tanggal naik.
func (s *ReportService) Cashflow(days int) ([]CashflowDay, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var payments []models.Payment
	if err := s.DB.Where("payment_date >= ?", since).Find(&payments).Error; err != nil {
		return nil, err
	}
	var expenses []models.Expense
	if err := s.DB.Where("tanggal >= ?", since).Find(&expenses).Error; err != nil {
		return nil, err
	}

	byDate := make(map[string]*CashflowDay)
	day := func(date string) *CashflowDay {
		entry, ok := byDate[date]
		if !ok {
			entry = &CashflowDay{Date: date}
			byDate[date] = entry
		}
		return entry
	}
	for _, p := range payments {
		day(p.PaymentDate.Format("2006-01-02")).In += p.Amount
	}
	for _, e := range expenses {
		day(e.Tanggal.Format("2006-01-02")).Out += int64(e.Qty) * e.Harga
	}

	result := make([]CashflowDay, 0, len(byDate))
	for _, entry := range byDate {
		entry.Net = decimal.NewFromInt(entry.In - entry.Out)
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

// Summary menghasilkan ringkasan keuangan untuk halaman finance.
func (s *ReportService) Summary(filter ReportFilter) (*FinanceSummary, error) {
	sales, err := s.Sales(filter)
	if err != nil {
		return nil, err
	}

	var payments []models.Payment
	q := s.DB.Model(&models.Payment{})
	if !filter.Start.IsZero() {
		q = q.Where("payment_date >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		q = q.Where("payment_date <= ?", filter.End)
	}
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}

	expenseReport, err := s.Expenses(filter)
	if err != nil {
		return nil, err
	}

	receivables, err := s.Receivables()
	if err != nil {
		return nil, err
	}

	return &FinanceSummary{
		TotalSales:    sales.TotalSales,
		TotalReceived: AmountPaid(payments),
		TotalExpense:  expenseReport.TotalExpense,
		Receivables:   receivables,
	}, nil
}

type DashboardStats struct {
	TotalOrders    int64           `json:"total_orders"`
	OrdersToday    int64           `json:"orders_today"`
	ItemsToProcess int64           `json:"items_to_process"`
	UnpaidOrders   int64           `json:"unpaid_orders"`
	SalesToday     decimal.Decimal `json:"sales_today"`
	ReceivedToday  int64           `json:"received_today"`
	TotalCustomers int64           `json:"total_customers"`
}

// Dashboard menghitung kartu statistik halaman utama. Item yang masih
// perlu dikerjakan = item dengan status produksi selain Selesai.
func (s *ReportService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{SalesToday: decimal.Zero}
	today := time.Now().Format("2006-01-02")

	if err := s.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	// DATE() supaya kolom datetime tetap cocok dibandingkan dengan string tanggal
	if err := s.DB.Model(&models.Order{}).Where("DATE(tanggal) = ?", today).Count(&stats.OrdersToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.OrderItem{}).
		Where("status_produksi <> ?", models.ProduksiSelesai).
		Count(&stats.ItemsToProcess).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Order{}).
		Where("status_pembayaran = ?", models.PaymentStatusBelumLunas).
		Count(&stats.UnpaidOrders).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	var paymentsToday []models.Payment
	if err := s.DB.Where("DATE(payment_date) = ?", today).Find(&paymentsToday).Error; err != nil {
		return nil, err
	}
	stats.ReceivedToday = AmountPaid(paymentsToday)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sales, err := s.Sales(ReportFilter{Start: startOfDay})
	if err != nil {
		return nil, err
	}
	stats.SalesToday = sales.TotalSales

	return stats, nil
}
