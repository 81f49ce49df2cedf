package pricing

import (
	"github.com/shopspring/decimal"

	"mars_shop/internal/i18n"
)

// Le dinar tunisien se divise en 1000 millimes.
const Places = 3

// FormatPrice affiche un montant avec 3 décimales et le symbole de la langue :
// symbole en tête pour l'anglais, en fin pour le français et l'arabe.
func FormatPrice(amount decimal.Decimal, lang i18n.Language) string {
	value := amount.StringFixed(Places)
	symbol := i18n.T(lang, "currency.symbol")
	switch lang {
	case i18n.French, i18n.Arabic:
		return value + " " + symbol
	default:
		return symbol + " " + value
	}
}

// Round arrondit au millime.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}
