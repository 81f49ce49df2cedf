package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mars_shop/internal/models"
)

func TestTFallsBackToKey(t *testing.T) {
	assert.Equal(t, "Panier", T(French, "nav.cart"))
	assert.Equal(t, "د.ت", T(Arabic, "currency.symbol"))
	assert.Equal(t, "does.not.exist", T(French, "does.not.exist"))
	assert.Equal(t, "Cart", T(Language("de"), "nav.cart"))
}

func TestArabicDeliveredStatus(t *testing.T) {
	assert.Equal(t, "تم التسليم", T(Arabic, "status.delivered"))
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Language{"fr": French, "FR": French, "ar-TN": Arabic, " en ": English} {
		got, ok := Parse(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := Parse("de")
	assert.False(t, ok)
}

func TestLanguagesRTL(t *testing.T) {
	for _, l := range Languages() {
		assert.Equal(t, l.Code == Arabic, l.RTL, l.Code)
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, French, Negotiate("fr-FR,fr;q=0.9,en;q=0.8"))
	assert.Equal(t, Arabic, Negotiate("ar-TN"))
	assert.Equal(t, English, Negotiate(""))
	assert.Equal(t, English, Negotiate("de-DE"))
}

func TestTranslateCategory(t *testing.T) {
	assert.Equal(t, "Électronique", TranslateCategory("electronics", French))
	assert.Equal(t, "garden-tools", TranslateCategory("garden-tools", French))
}

func TestTranslateProduct(t *testing.T) {
	p := models.Product{Name: "Wireless Bluetooth Headphones", Description: "Comfortable and stylish"}

	fr := TranslateProduct(p, French)
	assert.Equal(t, "Écouteurs Bluetooth Sans Fil", fr.Name)
	assert.Equal(t, "Confortable and élégant", fr.Description)

	assert.Equal(t, p, TranslateProduct(p, English))
	assert.Equal(t, "Wireless Bluetooth Headphones", p.Name)
}

func TestDictionary(t *testing.T) {
	d := Dictionary(French)
	assert.Equal(t, "Livré", d["status.delivered"])
	assert.Len(t, d, len(messages))
}
