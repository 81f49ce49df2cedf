package catalog

import (
	"sort"
	"strings"

	"mars_shop/internal/models"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortFeatured  Sort = "featured"
	SortName      Sort = "name"

	DefaultLimit = 10
	MaxLimit     = 100
)

type Query struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Sort     Sort   `form:"sort"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Page struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// Normalize applique les valeurs par défaut : page 1, 10 résultats, tri par nouveauté.
func (q Query) Normalize() Query {
	q.Category = strings.TrimSpace(q.Category)
	q.Search = strings.TrimSpace(q.Search)
	switch q.Sort {
	case SortPriceAsc, SortPriceDesc, SortFeatured, SortName:
	default:
		q.Sort = SortNewest
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func matchesText(p models.Product, needle string) bool {
	needle = strings.ToLower(needle)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

func sortProducts(products []models.Product, by Sort) {
	newest := func(a, b models.Product) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	}
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch by {
		case SortPriceAsc:
			if c := a.Price.Cmp(b.Price); c != 0 {
				return c < 0
			}
		case SortPriceDesc:
			if c := a.Price.Cmp(b.Price); c != 0 {
				return c > 0
			}
		case SortFeatured:
			if a.Featured != b.Featured {
				return a.Featured
			}
		case SortName:
			if an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name); an != bn {
				return an < bn
			}
		}
		return newest(a, b)
	})
}

func paginate(products []models.Product, q Query) Page {
	total := len(products)
	pages := (total + q.Limit - 1) / q.Limit
	start := total
	// Comparaison avant multiplication : une page énorme ne doit pas déborder.
	if q.Page-1 < pages {
		start = (q.Page - 1) * q.Limit
	}
	end := min(start+q.Limit, total)
	return Page{
		Products: append([]models.Product{}, products[start:end]...),
		Pagination: Pagination{
			Total: total,
			Pages: pages,
			Page:  q.Page,
			Limit: q.Limit,
		},
	}
}
