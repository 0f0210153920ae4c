package trade

import "github.com/shopspring/decimal"

// Margin is the realized economics of a deal, all amounts in minor units of
// one currency. Revenue comes from the approved customer quote, purchase
// costs from the purchase orders raised against the deal and expenses from
// the shipments moving the goods.
type Margin struct {
	RevenueMinorUnits       int64
	PurchaseCostsMinorUnits int64
	ExpensesMinorUnits      int64
	MarginMinorUnits        int64
	MarginPercent           decimal.Decimal
}

// ComputeMargin derives the deal margin:
//
//	margin  = revenue - purchase costs - expenses
//	percent = margin / revenue * 100, rounded to two places
//
// MarginPercent stays zero when there is no revenue to measure against.
func ComputeMargin(revenueMinorUnits, purchaseCostsMinorUnits, expensesMinorUnits int64) Margin {
	m := Margin{
		RevenueMinorUnits:       revenueMinorUnits,
		PurchaseCostsMinorUnits: purchaseCostsMinorUnits,
		ExpensesMinorUnits:      expensesMinorUnits,
		MarginMinorUnits:        revenueMinorUnits - purchaseCostsMinorUnits - expensesMinorUnits,
	}
	if revenueMinorUnits != 0 {
		m.MarginPercent = decimal.NewFromInt(m.MarginMinorUnits).
			Div(decimal.NewFromInt(revenueMinorUnits)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return m
}
