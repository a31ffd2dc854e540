package services

import (
	"fmt"
	"math"
	"strings"
)

var currencySymbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥", "CNY": "¥",
	"INR": "₹", "AUD": "A$", "CAD": "C$", "CHF": "CHF", "NZD": "NZ$",
	"SGD": "S$", "HKD": "HK$", "KRW": "₩", "THB": "฿", "VND": "₫",
	"IDR": "Rp", "MYR": "RM", "PHP": "₱", "TWD": "NT$", "PKR": "₨",
	"BDT": "৳", "LKR": "Rs", "NPR": "Rs", "AED": "د.إ", "SAR": "﷼",
	"QAR": "﷼", "KWD": "د.ك", "BHD": ".د.ب", "OMR": "﷼", "ILS": "₪",
	"TRY": "₺", "EGP": "E£", "ZAR": "R", "NGN": "₦", "KES": "KSh",
	"MAD": "MAD", "RUB": "₽", "UAH": "₴", "PLN": "zł", "CZK": "Kč",
	"HUF": "Ft", "SEK": "kr", "NOK": "kr", "DKK": "kr", "ISK": "kr",
	"RON": "lei", "BRL": "R$", "MXN": "MX$", "ARS": "AR$", "CLP": "CLP$",
	"COP": "COL$", "PEN": "S/",
}

// CurrencySymbol falls back to the ISO code itself for currencies without a symbol entry.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(code)
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}

func formatMoney(code string, amount float64) string {
	return fmt.Sprintf("%s%s", CurrencySymbol(code), formatAmount(amount))
}

// formatAmount renders whole amounts without decimals and groups thousands.
func formatAmount(amount float64) string {
	rounded := math.Round(amount*100) / 100
	var s string
	if rounded == math.Trunc(rounded) {
		s = fmt.Sprintf("%.0f", rounded)
	} else {
		s = fmt.Sprintf("%.2f", rounded)
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
