// Package money centralizes conversion between user-facing decimal amounts
// and the integer minor-unit representation every money column uses. All
// document types go through these helpers instead of ad hoc multiply-by-100
// snippets, so the rounding policy is applied in exactly one place.
package money

import (
	"fmt"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Rounding policy: half up (half away from zero), applied uniformly to every
// monetary computation in the system.

// ToMinorUnits converts a decimal amount to an integer count of minor units
// for a currency with the given number of decimal places (e.g. 2 for USD,
// 0 for JPY). Amounts with more precision than the currency supports are
// rounded half up, never truncated.
func ToMinorUnits(amount decimal.Decimal, decimalPlaces int) (int64, error) {
	if decimalPlaces < 0 {
		return 0, fmt.Errorf("%w: decimal places must be >= 0, got %d", apperrors.ErrValidation, decimalPlaces)
	}
	shifted := amount.Shift(int32(decimalPlaces)).Round(0)
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: amount %s overflows minor units", apperrors.ErrValidation, amount.String())
	}
	return shifted.IntPart(), nil
}

// ToDecimal converts a minor-unit amount back to an exact decimal. The result
// carries no binary-float error, so round-tripping a representable amount
// through ToMinorUnits and back yields the original value.
func ToDecimal(minorUnits int64, decimalPlaces int) decimal.Decimal {
	return decimal.New(minorUnits, -int32(decimalPlaces))
}

// Convert applies an exchange rate to a minor-unit amount, producing the
// equivalent minor-unit amount in the target currency, rounded half up.
// The rate must already be locked on the owning document; callers never pass
// a freshly-looked-up rate for a persisted document.
func Convert(amountMinorUnits int64, rate decimal.Decimal) (int64, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: got %s", apperrors.ErrInvalidRate, rate.String())
	}
	converted := decimal.NewFromInt(amountMinorUnits).Mul(rate).Round(0)
	if !converted.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: converted amount overflows minor units", apperrors.ErrValidation)
	}
	return converted.IntPart(), nil
}

// MulQuantity computes quantity x unit price in minor units, rounded half up.
// Quantities may be fractional (e.g. 2.5 metres), unit prices are integral
// minor units.
func MulQuantity(quantity decimal.Decimal, unitPriceMinorUnits int64) int64 {
	return quantity.Mul(decimal.NewFromInt(unitPriceMinorUnits)).Round(0).IntPart()
}
