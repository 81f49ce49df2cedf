// Package admin regroupe le back-office : statistiques du tableau de bord,
// changements de statut des commandes et exports Excel.
package admin

import (
	"sort"

	"github.com/shopspring/decimal"

	"mars_shop/internal/models"
)

const (
	TopProducts     = 5
	RecentOrders    = 5
	LowStockTrigger = 10
)

type DemandedProduct struct {
	ProductID    string          `json:"productId"`
	Product      models.Product  `json:"product"`
	TotalOrdered int             `json:"totalOrdered"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type Stats struct {
	TotalRevenue       decimal.Decimal            `json:"totalRevenue"`
	TotalOrders        int                        `json:"totalOrders"`
	TotalProducts      int                        `json:"totalProducts"`
	TotalUsers         int                        `json:"totalUsers"`
	PendingOrders      int                        `json:"pendingOrders"`
	CompletedOrders    int                        `json:"completedOrders"`
	LowStockProducts   int                        `json:"lowStockProducts"`
	OutOfStockProducts int                        `json:"outOfStockProducts"`
	OrdersByStatus     map[models.OrderStatus]int `json:"ordersByStatus"`
	MostDemanded       []DemandedProduct          `json:"mostDemanded"`
	RecentOrders       []models.Order             `json:"recentOrders"`
}

// Aggregate calcule les statistiques. Les commandes annulées comptent dans
// TotalOrders mais jamais dans le chiffre d'affaires ni la demande.
// orders doit être trié de la plus récente à la plus ancienne.
func Aggregate(orders []models.Order, products []models.Product) Stats {
	stats := Stats{
		TotalRevenue:   decimal.Zero,
		TotalOrders:    len(orders),
		TotalProducts:  len(products),
		OrdersByStatus: make(map[models.OrderStatus]int),
	}

	catalog := make(map[string]models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
		switch {
		case p.Stock == 0:
			stats.OutOfStockProducts++
		case p.Stock < LowStockTrigger:
			stats.LowStockProducts++
		}
	}

	demand := make(map[string]*DemandedProduct)
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		switch o.Status {
		case models.StatusPending:
			stats.PendingOrders++
		case models.StatusDelivered:
			stats.CompletedOrders++
		}
		if o.Status == models.StatusCancelled {
			continue
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)

		for _, item := range o.Items {
			d, ok := demand[item.ProductID]
			if !ok {
				product, known := catalog[item.ProductID]
				if !known {
					product = item.Product
				}
				d = &DemandedProduct{ProductID: item.ProductID, Product: product, Revenue: decimal.Zero}
				demand[item.ProductID] = d
			}
			d.TotalOrdered += item.Quantity
			d.Revenue = d.Revenue.Add(item.LineTotal())
		}
	}

	stats.MostDemanded = MostDemanded(demand, TopProducts)

	n := min(RecentOrders, len(orders))
	stats.RecentOrders = append([]models.Order(nil), orders[:n]...)
	return stats
}

// MostDemanded trie par quantité décroissante, puis par id de produit.
func MostDemanded(demand map[string]*DemandedProduct, limit int) []DemandedProduct {
	out := make([]DemandedProduct, 0, len(demand))
	for _, d := range demand {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalOrdered != out[j].TotalOrdered {
			return out[i].TotalOrdered > out[j].TotalOrdered
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
