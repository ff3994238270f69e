package exchange

import (
	"sort"
	"strings"
)

var supportedCurrencies = []string{"USD", "EUR", "JPY", "GBP", "AUD", "CAD", "CHF", "CNY", "INR", "NPR", "NZD"}

// SupportedCurrencies returns the selectable currency codes sorted alphabetically.
func SupportedCurrencies() []string {
	codes := append([]string(nil), supportedCurrencies...)
	sort.Strings(codes)
	return codes
}

// IsSupported reports whether code is one of the selectable currencies.
func IsSupported(code string) bool {
	code = NormalizeCode(code)
	for _, supported := range supportedCurrencies {
		if supported == code {
			return true
		}
	}
	return false
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
