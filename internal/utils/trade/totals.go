// Package trade holds the document totals calculation shared by purchase
// orders, customer quotes, supplier quotes, invoices and shipments.
package trade

import (
	"github.com/guidutra-china/Impex-project-final-sub006/internal/utils/money"
	"github.com/shopspring/decimal"
)

// LineItem is the slice of a document line that totals calculation needs.
type LineItem struct {
	Quantity            decimal.Decimal
	UnitPriceMinorUnits int64
}

// Fees collects the document-level adjustments applied on top of the line
// item subtotal, all in minor units of the document currency. Shipping and
// insurance are ignored when the supplier already folded them into the unit
// prices.
type Fees struct {
	DiscountMinorUnits  int64
	TaxMinorUnits       int64
	ShippingMinorUnits  int64
	ShippingIncluded    bool
	InsuranceMinorUnits int64
	InsuranceIncluded   bool
	OtherMinorUnits     int64
}

// Totals is the result of a recalculation. Negative indicates the computed
// total went below zero; that is not rejected here (credit notes and heavy
// discounts are legitimate) but callers are expected to apply their own
// business rules when the flag is set.
type Totals struct {
	SubtotalMinorUnits int64
	TotalMinorUnits    int64
	Negative           bool
}

// LineTotal computes quantity x unit price for one line, rounded half up.
func LineTotal(item LineItem) int64 {
	return money.MulQuantity(item.Quantity, item.UnitPriceMinorUnits)
}

// Recalculate aggregates line items and fees into document totals:
//
//	subtotal = sum(round(quantity * unitPrice))
//	total    = subtotal - discount + tax + shipping + insurance + other
func Recalculate(items []LineItem, fees Fees) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += LineTotal(item)
	}

	shipping := fees.ShippingMinorUnits
	if fees.ShippingIncluded {
		shipping = 0
	}
	insurance := fees.InsuranceMinorUnits
	if fees.InsuranceIncluded {
		insurance = 0
	}

	total := subtotal - fees.DiscountMinorUnits + fees.TaxMinorUnits + shipping + insurance + fees.OtherMinorUnits

	return Totals{
		SubtotalMinorUnits: subtotal,
		TotalMinorUnits:    total,
		Negative:           total < 0,
	}
}

// ConvertTotal applies a locked exchange rate to a document total, yielding
// the base-currency equivalent in minor units.
func ConvertTotal(totalMinorUnits int64, lockedRate decimal.Decimal) (int64, error) {
	return money.Convert(totalMinorUnits, lockedRate)
}

// CheckRoundingConsistency reports whether a recomputed total drifted from the
// persisted one beyond the given tolerance (in minor units). A drift is a soft
// diagnostic: callers log it for review, they do not fail the operation.
func CheckRoundingConsistency(persistedMinorUnits, recomputedMinorUnits, toleranceMinorUnits int64) bool {
	diff := persistedMinorUnits - recomputedMinorUnits
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleranceMinorUnits
}
