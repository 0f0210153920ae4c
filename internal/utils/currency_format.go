package utils

import (
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/money"
)

// FormatMinorUnits renders a minor-units amount as a decimal string with the
// currency's precision.
// Example: 123456 minor units with USD (2 decimal places) returns "1234.56".
// Example: 1234 minor units with JPY (0 decimal places) returns "1234".
func FormatMinorUnits(minorUnits int64, currency domain.Currency) string {
	return money.ToDecimal(minorUnits, currency.DecimalPlaces).StringFixed(int32(currency.DecimalPlaces))
}

// FormatWithSymbol prepends the currency symbol, e.g. "$1234.56".
func FormatWithSymbol(minorUnits int64, currency domain.Currency) string {
	return currency.Symbol + FormatMinorUnits(minorUnits, currency)
}
