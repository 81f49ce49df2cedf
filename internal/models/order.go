package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusProcessing: 2,
	StatusShipped:    3,
	StatusDelivered:  4,
	StatusCancelled:  5,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// Terminal : delivered et cancelled ne bougent plus.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Rank donne la position dans le cycle de vie (cancelled est hors séquence).
func (s OrderStatus) Rank() int {
	if r, ok := orderStatuses[s]; ok {
		return r
	}
	return -1
}

// OrderItem fige le prix unitaire au moment de la commande.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   Product         `json:"product"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;size:64"`
	UserID          string          `json:"userId,omitempty" gorm:"index;size:64"`
	CustomerName    string          `json:"customerName" gorm:"not null"`
	CustomerPhone   string          `json:"customerPhone" gorm:"not null"`
	CustomerAddress string          `json:"customerAddress" gorm:"not null"`
	Items           []OrderItem     `json:"items" gorm:"serializer:json"`
	Total           decimal.Decimal `json:"total" gorm:"type:numeric(14,3);not null"`
	Status          OrderStatus     `json:"status" gorm:"index;size:16"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ItemsTotal recalcule Σ prix figé × quantité.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
