package models

import (
	"time"
)

// Payment adalah satu pembayaran (DP atau pelunasan) untuk sebuah order.
// Tidak ada edit; hapus baris akan memicu hitung ulang status order.
type Payment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"not null;index"`
	Order       Order     `json:"-" gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Amount      int64     `json:"amount" gorm:"not null"`
	PaymentDate time.Time `json:"payment_date" gorm:"type:date;not null"`
	KasirID     *uint     `json:"kasir_id,omitempty" gorm:"index"`
	Kasir       *User     `json:"kasir,omitempty" gorm:"foreignKey:KasirID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
