package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculate(t *testing.T) {
	items := []LineItem{
		{Quantity: decimal.NewFromInt(10), UnitPriceMinorUnits: 2500},
		{Quantity: decimal.NewFromInt(2), UnitPriceMinorUnits: 10000},
	}
	totals := Recalculate(items, Fees{
		DiscountMinorUnits:  1000,
		TaxMinorUnits:       500,
		ShippingMinorUnits:  2000,
		InsuranceMinorUnits: 300,
		OtherMinorUnits:     200,
	})

	assert.Equal(t, int64(45000), totals.SubtotalMinorUnits)
	assert.Equal(t, int64(47000), totals.TotalMinorUnits)
	assert.False(t, totals.Negative)
}

func TestRecalculateIncludedFeesAreIgnored(t *testing.T) {
	items := []LineItem{{Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 10000}}
	totals := Recalculate(items, Fees{
		ShippingMinorUnits:  2000,
		ShippingIncluded:    true,
		InsuranceMinorUnits: 300,
		InsuranceIncluded:   true,
	})

	assert.Equal(t, int64(10000), totals.TotalMinorUnits)
}

func TestRecalculateFractionalQuantityRoundsPerLine(t *testing.T) {
	// Each line rounds independently: 2.5 * 333 = 832.5 -> 833, three times.
	q, err := decimal.NewFromString("2.5")
	require.NoError(t, err)
	items := []LineItem{
		{Quantity: q, UnitPriceMinorUnits: 333},
		{Quantity: q, UnitPriceMinorUnits: 333},
		{Quantity: q, UnitPriceMinorUnits: 333},
	}
	totals := Recalculate(items, Fees{})

	assert.Equal(t, int64(2499), totals.SubtotalMinorUnits)
}

func TestRecalculateNegativeTotalFlagged(t *testing.T) {
	items := []LineItem{{Quantity: decimal.NewFromInt(1), UnitPriceMinorUnits: 100}}
	totals := Recalculate(items, Fees{DiscountMinorUnits: 500})

	assert.Equal(t, int64(-400), totals.TotalMinorUnits)
	assert.True(t, totals.Negative)
}

func TestConvertTotal(t *testing.T) {
	rate, err := decimal.NewFromString("0.1382")
	require.NoError(t, err)

	got, err := ConvertTotal(1000000, rate)
	require.NoError(t, err)
	assert.Equal(t, int64(138200), got)
}

func TestCheckRoundingConsistency(t *testing.T) {
	assert.True(t, CheckRoundingConsistency(1000, 1000, 0))
	assert.True(t, CheckRoundingConsistency(1000, 1001, 1))
	assert.False(t, CheckRoundingConsistency(1000, 1002, 1))
	assert.True(t, CheckRoundingConsistency(1002, 1000, 2))
}
