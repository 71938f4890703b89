package localize

import "fmt"

// currencySymbols covers the currencies the display layer prints with a
// symbol; everything else falls back to "CODE amount".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
	"AUD": "A$",
	"CAD": "C$",
}

// zeroDecimalCurrencies have no minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"IDR": true,
	"KRW": true,
	"VND": true,
}

// FormatAmount renders signed minor units as display currency. Negative
// amounts keep their sign in front of the symbol.
func FormatAmount(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if zeroDecimalCurrencies[currency] {
		if symbol, ok := currencySymbols[currency]; ok {
			return fmt.Sprintf("%s%s%d", sign, symbol, amount)
		}
		return fmt.Sprintf("%s%s %d", sign, currency, amount)
	}
	major := amount / 100
	minor := amount % 100
	if symbol, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%s%d.%02d", sign, symbol, major, minor)
	}
	if currency == "" {
		return fmt.Sprintf("%s%d.%02d", sign, major, minor)
	}
	return fmt.Sprintf("%s%s %d.%02d", sign, currency, major, minor)
}
