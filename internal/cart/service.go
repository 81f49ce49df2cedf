package cart

import (
	"context"
	"fmt"
	"log"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
)

// ProductSource donne l'état actuel d'un produit du catalogue.
type ProductSource interface {
	Get(ctx context.Context, id string) (models.Product, error)
}

// Service applique les règles de stock autour du Store.
type Service struct {
	storage  Storage
	products ProductSource
}

func NewService(storage Storage, products ProductSource) *Service {
	return &Service{storage: storage, products: products}
}

func (s *Service) Open(ctx context.Context, owner string) (*Store, error) {
	return Open(ctx, s.storage, owner)
}

// Add ajoute quantity exemplaires du produit, sans dépasser le stock.
func (s *Service) Add(ctx context.Context, owner, productID string, quantity int) (*Store, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("Quantité invalide", "quantity")
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	store, err := s.Open(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !product.InStock(store.Quantity(productID) + quantity) {
		return nil, apperr.Validation(fmt.Sprintf("Stock insuffisant pour %s", product.Name), "quantity")
	}
	if err := store.AddItem(ctx, product, quantity); err != nil {
		return nil, err
	}
	return store, nil
}

// SetQuantity remplace la quantité ; 0 ou moins retire la ligne.
func (s *Service) SetQuantity(ctx context.Context, owner, productID string, quantity int) (*Store, error) {
	store, err := s.Open(ctx, owner)
	if err != nil {
		return nil, err
	}
	if quantity > 0 {
		if store.Quantity(productID) == 0 {
			return nil, apperr.NotFound("Produit introuvable dans le panier")
		}
		product, err := s.products.Get(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.InStock(quantity) {
			return nil, apperr.Validation(fmt.Sprintf("Stock insuffisant pour %s", product.Name), "quantity")
		}
	}
	if err := store.UpdateQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Service) Remove(ctx context.Context, owner, productID string) (*Store, error) {
	store, err := s.Open(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := store.RemoveItem(ctx, productID); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Service) Clear(ctx context.Context, owner string) error {
	store, err := s.Open(ctx, owner)
	if err != nil {
		return err
	}
	return store.Clear(ctx)
}

// Merge verse le panier invité dans celui de l'utilisateur après connexion.
// Les quantités sont plafonnées au stock courant ; les produits disparus sont ignorés.
func (s *Service) Merge(ctx context.Context, from, to string) (*Store, error) {
	src, err := s.Open(ctx, from)
	if err != nil {
		return nil, err
	}
	dst, err := s.Open(ctx, to)
	if err != nil {
		return nil, err
	}
	if src.Len() == 0 {
		return dst, nil
	}

	for _, item := range src.Items() {
		product, err := s.products.Get(ctx, item.ProductID)
		if apperr.Is(err, apperr.KindNotFound) {
			log.Printf("⚠️ Produit %s retiré du catalogue, ignoré lors de la fusion du panier", item.ProductID)
			continue
		}
		if err != nil {
			return nil, err
		}
		qty := min(item.Quantity, product.Stock-dst.Quantity(item.ProductID))
		if qty <= 0 {
			continue
		}
		if err := dst.AddItem(ctx, product, qty); err != nil {
			return nil, err
		}
	}

	if err := src.Clear(ctx); err != nil {
		return nil, err
	}
	log.Printf("🛒 Panier %s fusionné dans %s", from, to)
	return dst, nil
}
