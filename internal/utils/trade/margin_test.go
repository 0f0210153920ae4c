package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMargin(t *testing.T) {
	m := ComputeMargin(100000, 60000, 10000)

	assert.Equal(t, int64(30000), m.MarginMinorUnits)
	assert.Equal(t, "30", m.MarginPercent.String())
}

func TestComputeMarginNegative(t *testing.T) {
	m := ComputeMargin(50000, 60000, 5000)

	assert.Equal(t, int64(-15000), m.MarginMinorUnits)
	assert.Equal(t, "-30", m.MarginPercent.String())
}

func TestComputeMarginZeroRevenue(t *testing.T) {
	m := ComputeMargin(0, 25000, 0)

	assert.Equal(t, int64(-25000), m.MarginMinorUnits)
	assert.True(t, m.MarginPercent.IsZero())
}

func TestComputeMarginPercentRounds(t *testing.T) {
	// 1000 / 30000 * 100 = 3.333... -> 3.33
	m := ComputeMargin(30000, 29000, 0)

	assert.Equal(t, "3.33", m.MarginPercent.String())
}
