package repository

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"

	"mars_shop/internal/models"
)

// row simule gocql.Query.Scan : chaque valeur est copiée dans le pointeur correspondant.
func row(values ...any) func(dest ...any) error {
	return func(dest ...any) error {
		if len(dest) != len(values) {
			return errors.New("nombre de colonnes inattendu")
		}
		for i, d := range dest {
			reflect.ValueOf(d).Elem().Set(reflect.ValueOf(values[i]))
		}
		return nil
	}
}

func TestScanProductDecodesColumns(t *testing.T) {
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	p, err := scanProduct(row(
		"1", "Headphones", "Bluetooth", *inf.NewDec(270500, 3), []string{"a.jpg"}, "electronics", 15,
		true, `[{"id":"black","name":"Noir","value":"#000"}]`, "", created, created,
	))
	require.NoError(t, err)

	assert.Equal(t, "Headphones", p.Name)
	assert.True(t, decimal.RequireFromString("270.5").Equal(p.Price), p.Price.String())
	assert.Equal(t, []models.ProductColor{{ID: "black", Name: "Noir", Value: "#000"}}, p.Colors)
	assert.Nil(t, p.Sizes)
	assert.Equal(t, 15, p.Stock)
	assert.True(t, p.Featured)
}

func TestScanProductRejectsCorruptJSON(t *testing.T) {
	_, err := scanProduct(row(
		"1", "Headphones", "", *inf.NewDec(1, 0), []string{}, "electronics", 1,
		false, "", `{"oops"`, time.Time{}, time.Time{},
	))
	assert.Error(t, err)
}

func TestScanOrderDecodesItems(t *testing.T) {
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	o, err := scanOrder(row(
		"o-1", "2", "John", "20 000 000", "Tunis",
		`[{"productId":"4","quantity":2,"price":240,"product":{"id":"4","name":"Sunglasses"}}]`,
		*inf.NewDec(480, 0), "shipped", "", created, created,
	))
	require.NoError(t, err)

	assert.Equal(t, models.StatusShipped, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Sunglasses", o.Items[0].Product.Name)
	assert.True(t, decimal.NewFromInt(240).Equal(o.Items[0].Price))
	assert.True(t, decimal.NewFromInt(480).Equal(o.Total))
}

func TestScanPropagatesDriverError(t *testing.T) {
	boom := errors.New("boom")
	_, err := scanOrder(func(...any) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestJSONColumnsRoundTripAndEmpty(t *testing.T) {
	s, err := toJSON([]models.ProductSize{{ID: "m", Name: "M", Stock: 3}})
	require.NoError(t, err)

	var sizes []models.ProductSize
	require.NoError(t, fromJSON(s, &sizes))
	assert.Equal(t, 3, sizes[0].Stock)

	for _, empty := range []string{"", "null"} {
		var none []models.ProductSize
		require.NoError(t, fromJSON(empty, &none))
		assert.Nil(t, none)
	}
}
