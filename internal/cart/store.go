// Package cart gère le panier d'un propriétaire (utilisateur ou invité).
// Chaque mutation réécrit le snapshot complet dans le Storage.
package cart

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
	"mars_shop/internal/snapshot"
)

// Storage persiste le snapshot brut d'un panier. Load renvoie (nil, nil) si rien n'est stocké.
type Storage interface {
	Load(ctx context.Context, owner string) ([]byte, error)
	Save(ctx context.Context, owner string, data []byte) error
	Delete(ctx context.Context, owner string) error
}

type state struct {
	Items []models.CartItem `json:"items"`
}

type Store struct {
	owner   string
	storage Storage
	items   []models.CartItem
}

func UserOwner(userID string) string  { return "user:" + userID }
func GuestOwner(guestID string) string { return "guest:" + guestID }

// Open restaure le panier ; un snapshot illisible donne un panier vide.
func Open(ctx context.Context, storage Storage, owner string) (*Store, error) {
	s := &Store{owner: owner, storage: storage}

	raw, err := storage.Load(ctx, owner)
	if err != nil {
		return nil, apperr.Transient("lecture panier", err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	var st state
	if err := snapshot.Decode(raw, &st); err != nil {
		if errors.Is(err, snapshot.ErrCorrupt) {
			log.Printf("⚠️ Panier %s illisible, on repart d'un panier vide: %v", owner, err)
			return s, nil
		}
		return nil, err
	}
	s.items = st.Items
	return s, nil
}

func (s *Store) Owner() string { return s.owner }

func (s *Store) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Quantity retourne la quantité d'un produit dans le panier (0 si absent).
func (s *Store) Quantity(productID string) int {
	if i := s.index(productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Total est recalculé à chaque appel.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// AddItem incrémente la ligne existante ou ajoute une nouvelle ligne en fin de panier.
func (s *Store) AddItem(ctx context.Context, product models.Product, quantity int) error {
	if quantity <= 0 {
		return apperr.Validation("Quantité invalide", "quantity")
	}
	next := s.Items()
	if i := s.index(product.ID); i >= 0 {
		next[i].Quantity += quantity
	} else {
		next = append(next, models.CartItem{ProductID: product.ID, Quantity: quantity, Product: product})
	}
	return s.commit(ctx, next)
}

// RemoveItem ne renvoie pas d'erreur si le produit est absent.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	i := s.index(productID)
	if i < 0 {
		return nil
	}
	next := make([]models.CartItem, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	return s.commit(ctx, next)
}

// UpdateQuantity : une quantité <= 0 retire la ligne.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}
	i := s.index(productID)
	if i < 0 {
		return nil
	}
	next := s.Items()
	next[i].Quantity = quantity
	return s.commit(ctx, next)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.commit(ctx, nil)
}

func (s *Store) index(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// commit persiste d'abord ; l'état en mémoire ne change que si l'écriture réussit.
func (s *Store) commit(ctx context.Context, next []models.CartItem) error {
	if len(next) == 0 {
		if err := s.storage.Delete(ctx, s.owner); err != nil {
			return apperr.Transient("suppression panier", err)
		}
		s.items = nil
		return nil
	}

	raw, err := snapshot.Encode(state{Items: next})
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, s.owner, raw); err != nil {
		return apperr.Transient("sauvegarde panier", err)
	}
	s.items = next
	return nil
}
