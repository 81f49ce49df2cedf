// Package handlers contient les vues JSON partagées par les handlers HTTP :
// produits traduits et prix formatés selon la langue de la requête.
package handlers

import (
	"github.com/shopspring/decimal"

	"mars_shop/internal/cart"
	"mars_shop/internal/i18n"
	"mars_shop/internal/models"
	"mars_shop/internal/pricing"
)

type ProductView struct {
	models.Product
	CategoryName string `json:"categoryName"`
	DisplayPrice string `json:"displayPrice"`
}

func Product(p models.Product, lang i18n.Language) ProductView {
	return ProductView{
		Product:      i18n.TranslateProduct(p, lang),
		CategoryName: i18n.TranslateCategory(p.Category, lang),
		DisplayPrice: pricing.FormatPrice(p.Price, lang),
	}
}

func Products(products []models.Product, lang i18n.Language) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, Product(p, lang))
	}
	return out
}

type CartItemView struct {
	ProductID        string          `json:"productId"`
	Quantity         int             `json:"quantity"`
	Product          ProductView     `json:"product"`
	LineTotal        decimal.Decimal `json:"lineTotal"`
	DisplayLineTotal string          `json:"displayLineTotal"`
}

type CartView struct {
	Items        []CartItemView  `json:"items"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"itemCount"`
	DisplayTotal string          `json:"displayTotal"`
}

func Cart(store *cart.Store, lang i18n.Language) CartView {
	items := store.Items()
	view := CartView{
		Items:        make([]CartItemView, 0, len(items)),
		Total:        store.Total(),
		ItemCount:    store.ItemCount(),
		DisplayTotal: pricing.FormatPrice(store.Total(), lang),
	}
	for _, item := range items {
		view.Items = append(view.Items, CartItemView{
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			Product:          Product(item.Product, lang),
			LineTotal:        item.LineTotal(),
			DisplayLineTotal: pricing.FormatPrice(item.LineTotal(), lang),
		})
	}
	return view
}

type OrderView struct {
	models.Order
	StatusLabel  string `json:"statusLabel"`
	DisplayTotal string `json:"displayTotal"`
}

func Order(o models.Order, lang i18n.Language) OrderView {
	return OrderView{
		Order:        o,
		StatusLabel:  i18n.T(lang, "status."+string(o.Status)),
		DisplayTotal: pricing.FormatPrice(o.Total, lang),
	}
}

func Orders(orders []models.Order, lang i18n.Language) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, Order(o, lang))
	}
	return out
}
