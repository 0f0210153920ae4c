package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		name          string
		amount        string
		decimalPlaces int
		want          int64
	}{
		{"exact two places", "1234.56", 2, 123456},
		{"rounds half up", "10.005", 2, 1001},
		{"rounds half up negative", "-10.005", 2, -1001},
		{"rounds down below half", "10.004", 2, 1000},
		{"zero decimal currency", "1234", 0, 1234},
		{"zero decimal rounds", "1234.5", 0, 1235},
		{"three decimal currency", "1.2345", 3, 1235},
		{"zero amount", "0", 2, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			require.NoError(t, err)

			got, err := ToMinorUnits(amount, tc.decimalPlaces)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToMinorUnitsRejectsNegativePlaces(t *testing.T) {
	_, err := ToMinorUnits(decimal.NewFromInt(1), -1)
	assert.Error(t, err)
}

func TestToDecimalRoundTrip(t *testing.T) {
	d := ToDecimal(123456, 2)
	assert.Equal(t, "1234.56", d.StringFixed(2))

	back, err := ToMinorUnits(d, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(123456), back)
}

func TestConvert(t *testing.T) {
	// 3999.99 USD at 7.2345 CNY/USD: 399999 * 7.2345 = 2893792.76...,
	// rounds to 2893793.
	rate, err := decimal.NewFromString("7.2345")
	require.NoError(t, err)

	got, err := Convert(399999, rate)
	require.NoError(t, err)
	assert.Equal(t, int64(2893793), got)
}

func TestConvertHalfUp(t *testing.T) {
	// 5 * 0.5 = 2.5 lands exactly on the boundary and rounds up.
	got, err := Convert(5, decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestConvertIdentity(t *testing.T) {
	got, err := Convert(123456, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), got)
}

func TestConvertRejectsNonPositiveRate(t *testing.T) {
	_, err := Convert(100, decimal.Zero)
	assert.Error(t, err)

	_, err = Convert(100, decimal.NewFromInt(-2))
	assert.Error(t, err)
}

func TestMulQuantity(t *testing.T) {
	// 2.5 metres at 3.33 per metre: 2.5 * 333 = 832.5, rounds to 833.
	q, err := decimal.NewFromString("2.5")
	require.NoError(t, err)
	assert.Equal(t, int64(833), MulQuantity(q, 333))

	// Whole quantities stay exact.
	assert.Equal(t, int64(999), MulQuantity(decimal.NewFromInt(3), 333))
}
