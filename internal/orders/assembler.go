// Package orders transforme un panier (ou un achat direct) et un formulaire
// client en commande figée.
package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
)

type Customer struct {
	Name    string `json:"customerName"`
	Phone   string `json:"customerPhone"`
	Address string `json:"customerAddress"`
	Notes   string `json:"notes"`
}

// Line : une ligne à commander, au prix retenu pour la commande.
type Line struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Product   models.Product
}

func LinesFromCart(items []models.CartItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
			Product:   item.Product,
		})
	}
	return lines
}

func (c Customer) trimmed() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		Notes:   strings.TrimSpace(c.Notes),
	}
}

func (c Customer) missing() []string {
	var fields []string
	if c.Name == "" {
		fields = append(fields, "customerName")
	}
	if c.Phone == "" {
		fields = append(fields, "customerPhone")
	}
	if c.Address == "" {
		fields = append(fields, "customerAddress")
	}
	return fields
}

// Assemble valide les données et construit une commande "pending".
// Le total est calculé une seule fois ici et ne suit plus le catalogue.
func Assemble(userID string, customer Customer, lines []Line, now time.Time) (models.Order, error) {
	customer = customer.trimmed()
	if fields := customer.missing(); len(fields) > 0 {
		return models.Order{}, apperr.Validation("Nom, téléphone et adresse sont obligatoires", fields...)
	}
	if len(lines) == 0 {
		return models.Order{}, apperr.Validation("La commande ne contient aucun article", "items")
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return models.Order{}, apperr.Validation("Ligne de commande invalide", "items")
		}
		if line.Price.IsNegative() {
			return models.Order{}, apperr.Validation("Prix invalide", "items")
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Product:   line.Product,
		})
	}

	created := now.UTC()
	order := models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		Notes:           customer.Notes,
		Items:           items,
		Status:          models.StatusPending,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	order.Total = order.ItemsTotal()
	return order, nil
}
