package models

import (
	"time"
)

// Status pembayaran diturunkan dari ledger pembayaran, jangan set manual.
const (
	PaymentStatusBelumLunas = "Belum Lunas"
	PaymentStatusLunas      = "Lunas"
)

// Status pesanan: Pending sampai diambil pelaksana, lalu Proses.
const (
	OrderStatusPending = "Pending"
	OrderStatusProses  = "Proses"
)

type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	NoNota           string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"no_nota"`
	Tanggal          time.Time   `gorm:"type:date;not null" json:"tanggal"`
	PelangganID      uint        `gorm:"not null;index" json:"pelanggan_id"`
	Pelanggan        Customer    `gorm:"foreignKey:PelangganID" json:"pelanggan,omitempty"`
	PelaksanaID      *uint       `gorm:"index" json:"pelaksana_id,omitempty"`
	Pelaksana        *User       `gorm:"foreignKey:PelaksanaID" json:"pelaksana,omitempty"`
	StatusPembayaran string      `gorm:"type:varchar(20);not null;default:'Belum Lunas'" json:"status_pembayaran"`
	StatusPesanan    string      `gorm:"type:varchar(20);not null;default:'Pending'" json:"status_pesanan"`
	OrderItems       []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	Payments         []Payment   `gorm:"foreignKey:OrderID" json:"payments"`
	CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}
