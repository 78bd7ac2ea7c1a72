package services

import (
	"github.com/nalaku/printshop-app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingService menghitung harga pesanan. Satu-satunya rumus uang di
// aplikasi; controller, laporan, dan nota semua lewat sini.
type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db}
}

// PriceForLevel memilih kolom harga bahan sesuai level customer.
// Level yang tidak dikenal menghasilkan 0, bukan error.
func PriceForLevel(bahan models.Bahan, level string) int64 {
	switch level {
	case models.LevelEndCustomer:
		return bahan.HargaEndCustomer
	case models.LevelRetail:
		return bahan.HargaRetail
	case models.LevelGrosir:
		return bahan.HargaGrosir
	case models.LevelReseller:
		return bahan.HargaReseller
	case models.LevelCorporate:
		return bahan.HargaCorporate
	default:
		return 0
	}
}

// ItemArea menghitung luas item. Kalau panjang dan lebar dua-duanya > 0
// harganya per luas (panjang x lebar), selain itu per pieces (faktor 1).
func ItemArea(item models.OrderItem) decimal.Decimal {
	if item.Panjang.IsPositive() && item.Lebar.IsPositive() {
		return item.Panjang.Mul(item.Lebar)
	}
	return decimal.NewFromInt(1)
}

// ItemSubtotal = harga satuan x luas x qty.
func ItemSubtotal(bahan models.Bahan, level string, item models.OrderItem) decimal.Decimal {
	price := decimal.NewFromInt(PriceForLevel(bahan, level))
	qty := decimal.NewFromInt(int64(item.Qty))
	return price.Mul(ItemArea(item)).Mul(qty)
}

// OrderTotal menjumlahkan subtotal semua item. Customer nil berarti data
// pelanggan sudah hilang: total 0. Item yang bahannya tidak ada di katalog
// dilewati, tidak menggagalkan pesanan.
func OrderTotal(order models.Order, customer *models.Customer, bahanByID map[uint]models.Bahan) decimal.Decimal {
	total := decimal.Zero
	if customer == nil {
		return total
	}
	for _, item := range order.OrderItems {
		if item.BahanID == nil {
			continue
		}
		bahan, ok := bahanByID[*item.BahanID]
		if !ok {
			continue
		}
		total = total.Add(ItemSubtotal(bahan, customer.Level, item))
	}
	return total
}

// OrderTotalFromDB memuat customer dan katalog bahan lalu memanggil
// OrderTotal. Pesanan yang items-nya belum ter-preload dimuat dulu.
func (s *PricingService) OrderTotalFromDB(order models.Order) (decimal.Decimal, error) {
	if len(order.OrderItems) == 0 {
		if err := s.DB.Where("order_id = ?", order.ID).Find(&order.OrderItems).Error; err != nil {
			return decimal.Zero, err
		}
	}

	var customer models.Customer
	if err := s.DB.First(&customer, order.PelangganID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	bahanByID, err := s.BahanCatalog()
	if err != nil {
		return decimal.Zero, err
	}
	return OrderTotal(order, &customer, bahanByID), nil
}

// BahanCatalog memuat seluruh bahan sebagai map id -> bahan.
func (s *PricingService) BahanCatalog() (map[uint]models.Bahan, error) {
	var bahans []models.Bahan
	if err := s.DB.Find(&bahans).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Bahan, len(bahans))
	for _, b := range bahans {
		byID[b.ID] = b
	}
	return byID, nil
}
