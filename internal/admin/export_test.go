package admin

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"mars_shop/internal/i18n"
	"mars_shop/internal/models"
)

func TestWriteOrdersXLSX(t *testing.T) {
	o := order("o1", models.StatusDelivered, item("A", 2, 10))
	o.CustomerName = "Sami"

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersXLSX(&buf, []models.Order{o}, i18n.French))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0].Cells[0].Value)
	assert.Equal(t, "o1", rows[1].Cells[0].Value)
	assert.Equal(t, "Sami", rows[1].Cells[2].Value)
	assert.Equal(t, "PA x2", rows[1].Cells[5].Value)
	assert.Equal(t, "Livré", rows[1].Cells[7].Value)
}

func TestWriteProductsXLSX(t *testing.T) {
	products := []models.Product{{ID: "1", Name: "Yoga Mat", Category: "sports", Price: decimal.NewFromInt(120), Stock: 4}}

	var buf bytes.Buffer
	require.NoError(t, WriteProductsXLSX(&buf, products, i18n.English))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Yoga Mat", rows[1].Cells[1].Value)
	assert.Equal(t, "4", rows[1].Cells[4].Value)
}
