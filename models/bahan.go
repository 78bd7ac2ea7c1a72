package models

import "time"

// Bahan adalah material cetak dengan lima harga satuan, satu per level customer.
// Semua harga dalam rupiah bulat, tidak boleh negatif.
type Bahan struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	HargaEndCustomer int64     `gorm:"not null;default:0" json:"harga_end_customer"`
	HargaRetail      int64     `gorm:"not null;default:0" json:"harga_retail"`
	HargaGrosir      int64     `gorm:"not null;default:0" json:"harga_grosir"`
	HargaReseller    int64     `gorm:"not null;default:0" json:"harga_reseller"`
	HargaCorporate   int64     `gorm:"not null;default:0" json:"harga_corporate"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}
