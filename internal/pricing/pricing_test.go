package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"mars_shop/internal/i18n"
)

func TestFormatPrice(t *testing.T) {
	amount := decimal.RequireFromString("19.99")

	assert.Equal(t, "TND 19.990", FormatPrice(amount, i18n.English))
	assert.Equal(t, "19.990 TND", FormatPrice(amount, i18n.French))
	assert.Equal(t, "19.990 د.ت", FormatPrice(amount, i18n.Arabic))
}

func TestFormatPriceDefaultsToEnglish(t *testing.T) {
	assert.Equal(t, "TND 0.000", FormatPrice(decimal.Zero, i18n.Language("")))
	assert.Equal(t, "TND 3900.000", FormatPrice(decimal.NewFromInt(3900), i18n.Language("de")))
}

func TestFormatPriceRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "TND 1.235", FormatPrice(decimal.RequireFromString("1.2345"), i18n.English))
	assert.Equal(t, "TND 270.500", FormatPrice(decimal.RequireFromString("270.5"), i18n.English))
}
