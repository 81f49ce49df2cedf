package admin

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"mars_shop/internal/i18n"
	"mars_shop/internal/models"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeFmt   = "2006-01-02 15:04:05"
)

// WriteOrdersXLSX écrit une ligne par commande, statut traduit dans lang.
func WriteOrdersXLSX(w io.Writer, orders []models.Order, lang i18n.Language) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("création feuille commandes: %w", err)
	}

	addHeader(sheet, "ID", "Date", "Customer", "Phone", "Address", "Items", "Total", "Status", "Notes")
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.CreatedAt.Format(exportTimeFmt))
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.CustomerPhone)
		row.AddCell().SetValue(o.CustomerAddress)
		row.AddCell().SetValue(describeItems(o.Items))
		row.AddCell().SetFloat(o.Total.InexactFloat64())
		row.AddCell().SetValue(i18n.T(lang, "status."+string(o.Status)))
		row.AddCell().SetValue(o.Notes)
	}
	return file.Write(w)
}

func WriteProductsXLSX(w io.Writer, products []models.Product, lang i18n.Language) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("création feuille produits: %w", err)
	}

	addHeader(sheet, "ID", "Name", "Category", "Price", "Stock", "Featured", "Images", "CreatedAt")
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(i18n.TranslateCategory(p.Category, lang))
		row.AddCell().SetFloat(p.Price.InexactFloat64())
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetBool(p.Featured)
		row.AddCell().SetValue(strings.Join(p.Images, ","))
		row.AddCell().SetValue(p.CreatedAt.Format(exportTimeFmt))
	}
	return file.Write(w)
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

func describeItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.Product.Name
		if name == "" {
			name = item.ProductID
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
