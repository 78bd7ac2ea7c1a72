package models

import "time"

// Expense adalah baris pengeluaran operasional; jumlah = Qty * Harga.
type Expense struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Tanggal          time.Time `gorm:"type:date;not null" json:"tanggal"`
	JenisPengeluaran string    `gorm:"type:varchar(255);not null" json:"jenis_pengeluaran"`
	Qty              int       `gorm:"not null;default:1" json:"qty"`
	Harga            int64     `gorm:"not null;default:0" json:"harga"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}
