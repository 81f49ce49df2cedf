package admin

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
	"mars_shop/internal/repository"
)

type Service struct {
	repos repository.Repositories
	now   func() time.Time
}

func NewService(repos repository.Repositories) *Service {
	return &Service{repos: repos, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (Stats, error) {
	orders, err := s.repos.Orders.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	products, err := s.repos.Products.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Aggregate(orders, products)
	if s.repos.Users != nil {
		users, err := s.repos.Users.Count(ctx)
		if err != nil {
			log.Printf("⚠️ Comptage utilisateurs impossible: %v", err)
		}
		stats.TotalUsers = users
	}
	return stats, nil
}

// Orders liste les commandes, éventuellement filtrées par statut.
func (s *Service) Orders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("Statut inconnu", "status")
	}
	all, err := s.repos.Orders.List(ctx)
	if err != nil || status == "" {
		return all, err
	}
	out := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// MarkComplete passe la commande à "delivered", quel que soit son statut.
func (s *Service) MarkComplete(ctx context.Context, id string) (models.Order, error) {
	return s.setStatus(ctx, id, models.StatusDelivered)
}

// MarkCancelled passe la commande à "cancelled", quel que soit son statut.
func (s *Service) MarkCancelled(ctx context.Context, id string) (models.Order, error) {
	return s.setStatus(ctx, id, models.StatusCancelled)
}

func (s *Service) setStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	order, err := s.repos.Orders.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	order.Status = status
	order.UpdatedAt = s.now().UTC()
	if err := s.repos.Orders.Update(ctx, order); err != nil {
		return models.Order{}, err
	}
	log.Printf("✅ Commande %s -> %s", id, status)
	return order, nil
}

// OrderPatch : seuls les champs présents sont modifiés. Quantities associe
// un productId à sa nouvelle quantité (0 ou moins retire la ligne).
type OrderPatch struct {
	Status     *models.OrderStatus `json:"status"`
	Notes      *string             `json:"notes"`
	Quantities map[string]int      `json:"quantities"`
}

func (p OrderPatch) Empty() bool {
	return p.Status == nil && p.Notes == nil && len(p.Quantities) == 0
}

// CanTransition : delivered et cancelled sont définitifs, les autres statuts
// avancent dans l'ordre du cycle de vie ou passent à cancelled.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	if from.Terminal() || !to.Valid() {
		return false
	}
	if to == models.StatusCancelled {
		return true
	}
	return to.Rank() > from.Rank()
}

// UpdateOrder applique une modification d'admin. Le total est recalculé à
// partir des prix figés des lignes, jamais depuis le catalogue.
func (s *Service) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (models.Order, error) {
	if patch.Empty() {
		return models.Order{}, apperr.Validation("Aucune modification fournie")
	}
	order, err := s.repos.Orders.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	if patch.Status != nil {
		next := *patch.Status
		if !next.Valid() {
			return models.Order{}, apperr.Validation("Statut inconnu", "status")
		}
		if !CanTransition(order.Status, next) {
			return models.Order{}, apperr.Validation(
				fmt.Sprintf("Transition %s -> %s interdite", order.Status, next), "status")
		}
		order.Status = next
	}

	if patch.Notes != nil {
		order.Notes = strings.TrimSpace(*patch.Notes)
	}

	if len(patch.Quantities) > 0 {
		items, err := applyQuantities(order.Items, patch.Quantities)
		if err != nil {
			return models.Order{}, err
		}
		order.Items = items
		order.Total = order.ItemsTotal()
	}

	order.UpdatedAt = s.now().UTC()
	if err := s.repos.Orders.Update(ctx, order); err != nil {
		return models.Order{}, err
	}
	log.Printf("✅ Commande %s modifiée (statut %s, total %s)", id, order.Status, order.Total.StringFixed(3))
	return order, nil
}

func applyQuantities(items []models.OrderItem, quantities map[string]int) ([]models.OrderItem, error) {
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.ProductID] = true
	}
	for productID := range quantities {
		if !known[productID] {
			return nil, apperr.Validation(fmt.Sprintf("Article %s absent de la commande", productID), "quantities")
		}
	}

	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if q, ok := quantities[item.ProductID]; ok {
			if q <= 0 {
				continue
			}
			item.Quantity = q
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, apperr.Validation("Une commande doit garder au moins un article", "quantities")
	}
	return out, nil
}

// Products renvoie tout le catalogue, pour l'export.
func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	return s.repos.Products.List(ctx)
}
