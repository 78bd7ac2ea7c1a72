package database

import (
	"github.com/nalaku/printshop-app/services"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

// RunIntegrityPass menyisir seluruh order saat boot dan memperbaiki
// status_pembayaran yang tidak lagi sesuai ledger (mis. karena harga
// bahan atau level customer berubah saat aplikasi mati).
func RunIntegrityPass(db *gorm.DB) error {
	ledger := services.NewLedgerService(db)

	fixed, err := ledger.RefreshAllPaymentStatuses()
	if err != nil {
		utils.ErrorLogger.Printf("Integrity pass failed: %v", err)
		return err
	}

	if fixed > 0 {
		utils.InfoLogger.Printf("Integrity pass corrected %d order payment status(es)", fixed)
	} else {
		utils.InfoLogger.Println("Integrity pass completed, no drift found")
	}
	return nil
}
