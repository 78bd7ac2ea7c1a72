package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah memformat rupiah bulat dengan pemisah ribuan.
// Contoh: 1500000 -> "Rp 1.500.000"
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	formatted := "Rp " + strings.Join(groups, ".")
	if negative {
		return "-" + formatted
	}
	return formatted
}

// FormatRupiahDecimal memformat nilai desimal; bagian pecahan dua digit
// dengan koma, dibuang kalau nol. Contoh: 15000.50 -> "Rp 15.000,50"
func FormatRupiahDecimal(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	frac := amount.Sub(whole).Abs().Mul(decimal.NewFromInt(100)).Round(0)

	formatted := FormatRupiah(whole.IntPart())
	if frac.IsZero() {
		return formatted
	}
	return fmt.Sprintf("%s,%02d", formatted, frac.IntPart())
}
