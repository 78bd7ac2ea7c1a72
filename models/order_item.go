package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status produksi per item. Transisi lewat aksi standar hanya maju.
const (
	ProduksiBelumDikerjakan = "Belum Dikerjakan"
	ProduksiProses          = "Proses"
	ProduksiSelesai         = "Selesai"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order            Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	BahanID          *uint           `gorm:"index" json:"bahan_id,omitempty"`
	Bahan            *Bahan          `gorm:"foreignKey:BahanID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"bahan,omitempty"`
	DeskripsiPesanan string          `gorm:"type:text" json:"deskripsi_pesanan"`
	Panjang          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"panjang"`
	Lebar            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"lebar"`
	Qty              int             `gorm:"not null;default:1" json:"qty"`
	StatusProduksi   string          `gorm:"type:varchar(20);not null;default:'Belum Dikerjakan'" json:"status_produksi"`
	Finishing        string          `gorm:"type:varchar(255)" json:"finishing"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}
