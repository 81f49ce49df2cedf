package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Les prix sont encodés en nombre JSON (19.99) et non en chaîne.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type ProductColor struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Value  string   `json:"value"`
	Images []string `json:"images,omitempty"`
}

type ProductSize struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;size:64"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(14,3);not null"`
	Images      []string        `json:"images" gorm:"serializer:json"`
	Category    string          `json:"category" gorm:"index;size:64"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured" gorm:"index"`
	Colors      []ProductColor  `json:"colors,omitempty" gorm:"serializer:json"`
	Sizes       []ProductSize   `json:"sizes,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// InStock indique si la quantité demandée est disponible.
func (p Product) InStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

// ProductPatch : mise à jour partielle, seuls les champs non nil sont appliqués.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Images      *[]string        `json:"images"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	Featured    *bool            `json:"featured"`
	Colors      *[]ProductColor  `json:"colors"`
	Sizes       *[]ProductSize   `json:"sizes"`
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Images == nil &&
		p.Category == nil && p.Stock == nil && p.Featured == nil && p.Colors == nil && p.Sizes == nil
}

// Apply retourne une copie du produit avec le patch appliqué.
func (p ProductPatch) Apply(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Images != nil {
		product.Images = append([]string(nil), (*p.Images)...)
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Featured != nil {
		product.Featured = *p.Featured
	}
	if p.Colors != nil {
		product.Colors = append([]ProductColor(nil), (*p.Colors)...)
	}
	if p.Sizes != nil {
		product.Sizes = append([]ProductSize(nil), (*p.Sizes)...)
	}
	return product
}
