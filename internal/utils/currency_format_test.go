package utils

import (
	"testing"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinorUnits(t *testing.T) {
	usd := domain.Currency{CurrencyCode: "USD", Symbol: "$", DecimalPlaces: 2}
	jpy := domain.Currency{CurrencyCode: "JPY", Symbol: "¥", DecimalPlaces: 0}

	assert.Equal(t, "1234.56", FormatMinorUnits(123456, usd))
	assert.Equal(t, "0.05", FormatMinorUnits(5, usd))
	assert.Equal(t, "-10.00", FormatMinorUnits(-1000, usd))
	assert.Equal(t, "1234", FormatMinorUnits(1234, jpy))
}

func TestFormatWithSymbol(t *testing.T) {
	usd := domain.Currency{CurrencyCode: "USD", Symbol: "$", DecimalPlaces: 2}

	assert.Equal(t, "$1234.56", FormatWithSymbol(123456, usd))
}
