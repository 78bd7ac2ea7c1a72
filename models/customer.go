package models

import (
	"time"
)

// Level harga customer. Level menentukan kolom harga bahan yang dipakai.
const (
	LevelEndCustomer = "End Customer"
	LevelRetail      = "Retail"
	LevelGrosir      = "Grosir"
	LevelReseller    = "Reseller"
	LevelCorporate   = "Corporate"
)

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	Level     string    `gorm:"type:varchar(20);not null;default:'End Customer'" json:"level"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
