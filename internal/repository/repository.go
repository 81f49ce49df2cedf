// Package repository isole le stockage des produits, catégories, commandes
// et utilisateurs. Trois implémentations : mémoire, ScyllaDB et Postgres.
package repository

import (
	"context"

	"mars_shop/internal/models"
)

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (models.Category, error)
	Create(ctx context.Context, c models.Category) error
	Update(ctx context.Context, c models.Category) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository : les listes sont triées de la plus récente à la plus ancienne.
type OrderRepository interface {
	Create(ctx context.Context, o models.Order) error
	Get(ctx context.Context, id string) (models.Order, error)
	Update(ctx context.Context, o models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// UserRepository : l'email est unique, Create et Update renvoient un conflit sinon.
type UserRepository interface {
	Create(ctx context.Context, u models.User) error
	Get(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, u models.User) error
	Count(ctx context.Context) (int, error)
}

type Repositories struct {
	Products   ProductRepository
	Categories CategoryRepository
	Orders     OrderRepository
	Users      UserRepository
}
