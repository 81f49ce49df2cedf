package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/skip2/go-qrcode"

	"mars_shop/internal/apperr"
	"mars_shop/internal/cart"
	"mars_shop/internal/models"
	"mars_shop/internal/repository"
)

// Notifier est prévenu après la création d'une commande (e-mail boutique).
type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order) error
}

type Deps struct {
	Orders   repository.OrderRepository
	Users    repository.UserRepository
	Products cart.ProductSource
	Carts    *cart.Service
	Guard    Guard
	Notifier Notifier
	BaseURL  string
}

type Service struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	products cart.ProductSource
	carts    *cart.Service
	guard    Guard
	notifier Notifier
	baseURL  string
	now      func() time.Time
}

func NewService(d Deps) *Service {
	guard := d.Guard
	if guard == nil {
		guard = NewMemoryGuard()
	}
	return &Service{
		orders:   d.Orders,
		users:    d.Users,
		products: d.Products,
		carts:    d.Carts,
		guard:    guard,
		notifier: d.Notifier,
		baseURL:  d.BaseURL,
		now:      time.Now,
	}
}

// Result : Replayed vaut true quand la clé d'idempotence renvoie une commande existante.
type Result struct {
	Order    models.Order
	Replayed bool
}

// PlaceFromCart crée la commande à partir du panier du propriétaire puis vide le panier.
// Les prix et stocks sont relus dans le catalogue au moment de la commande.
func (s *Service) PlaceFromCart(ctx context.Context, owner, userID string, customer Customer, idemKey string) (Result, error) {
	return s.place(ctx, owner, idemKey, func() (models.Order, error) {
		store, err := s.carts.Open(ctx, owner)
		if err != nil {
			return models.Order{}, err
		}
		if store.Len() == 0 {
			return models.Order{}, apperr.Validation("Votre panier est vide", "items")
		}
		lines, err := s.refresh(ctx, LinesFromCart(store.Items()))
		if err != nil {
			return models.Order{}, err
		}
		order, err := s.create(ctx, userID, customer, lines)
		if err != nil {
			return models.Order{}, err
		}
		if err := store.Clear(ctx); err != nil {
			log.Printf("⚠️ Commande %s créée mais panier %s non vidé: %v", order.ID, owner, err)
		}
		return order, nil
	})
}

// PlaceDirect commande un seul produit sans passer par le panier.
func (s *Service) PlaceDirect(ctx context.Context, owner, userID string, customer Customer, productID string, quantity int, idemKey string) (Result, error) {
	return s.place(ctx, owner, idemKey, func() (models.Order, error) {
		lines, err := s.refresh(ctx, []Line{{ProductID: productID, Quantity: quantity}})
		if err != nil {
			return models.Order{}, err
		}
		return s.create(ctx, userID, customer, lines)
	})
}

func (s *Service) place(ctx context.Context, owner, idemKey string, build func() (models.Order, error)) (Result, error) {
	if idemKey == "" {
		order, err := build()
		if err != nil {
			return Result{}, err
		}
		s.notify(order)
		return Result{Order: order}, nil
	}

	existing, reserved, err := s.guard.Reserve(ctx, owner, idemKey)
	if err != nil {
		return Result{}, apperr.Transient("réservation clé d'idempotence", err)
	}
	if !reserved {
		if existing == "" {
			return Result{}, apperr.Conflict("Commande déjà en cours de traitement")
		}
		order, err := s.orders.Get(ctx, existing)
		if err != nil {
			return Result{}, err
		}
		log.Printf("🔁 Commande %s rejouée pour la clé %s", order.ID, idemKey)
		return Result{Order: order, Replayed: true}, nil
	}

	order, err := build()
	if err != nil {
		if rerr := s.guard.Release(ctx, owner, idemKey); rerr != nil {
			log.Printf("⚠️ Libération clé d'idempotence %s: %v", idemKey, rerr)
		}
		return Result{}, err
	}
	if err := s.guard.Complete(ctx, owner, idemKey, order.ID); err != nil {
		log.Printf("⚠️ Enregistrement clé d'idempotence %s: %v", idemKey, err)
	}
	s.notify(order)
	return Result{Order: order}, nil
}

// refresh remplace prix et snapshot par l'état actuel du catalogue et vérifie le stock.
func (s *Service) refresh(ctx context.Context, lines []Line) ([]Line, error) {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.Validation("Quantité invalide", "quantity")
		}
		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil, apperr.NotFound(fmt.Sprintf("Produit %s introuvable", line.ProductID))
			}
			return nil, err
		}
		if !product.InStock(line.Quantity) {
			return nil, apperr.Validation(fmt.Sprintf("Stock insuffisant pour %s", product.Name), "quantity")
		}
		out = append(out, Line{ProductID: product.ID, Quantity: line.Quantity, Price: product.Price, Product: product})
	}
	return out, nil
}

func (s *Service) create(ctx context.Context, userID string, customer Customer, lines []Line) (models.Order, error) {
	customer, err := s.prefill(ctx, userID, customer)
	if err != nil {
		return models.Order{}, err
	}
	order, err := Assemble(userID, customer, lines, s.now())
	if err != nil {
		return models.Order{}, err
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return models.Order{}, err
	}
	log.Printf("✅ Commande %s créée (%d articles, total %s)", order.ID, len(order.Items), order.Total.StringFixed(3))
	return order, nil
}

// prefill complète les champs vides avec le profil de l'utilisateur connecté.
func (s *Service) prefill(ctx context.Context, userID string, c Customer) (Customer, error) {
	if userID == "" || s.users == nil {
		return c, nil
	}
	t := c.trimmed()
	if len(t.missing()) == 0 {
		return c, nil
	}
	user, err := s.users.Get(ctx, userID)
	if apperr.Is(err, apperr.KindNotFound) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if t.Name == "" {
		c.Name = user.Name
	}
	if t.Phone == "" {
		c.Phone = user.Phone
	}
	if t.Address == "" {
		c.Address = user.Address
	}
	return c, nil
}

func (s *Service) notify(order models.Order) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.OrderPlaced(ctx, order); err != nil {
			log.Printf("⚠️ Notification commande %s non envoyée: %v", order.ID, err)
		}
	}()
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// Get renvoie la commande si elle appartient à l'utilisateur (ou s'il est admin).
func (s *Service) Get(ctx context.Context, id, userID string, isAdmin bool) (models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !isAdmin && (order.UserID == "" || order.UserID != userID) {
		return models.Order{}, apperr.NotFound("Commande introuvable")
	}
	return order, nil
}

// TrackingURL est l'adresse encodée dans le QR code de la commande.
func (s *Service) TrackingURL(order models.Order) string {
	return s.baseURL + "/orders/" + order.ID
}

// QRCode retourne un PNG 256x256 pointant vers le suivi de la commande.
func (s *Service) QRCode(order models.Order) ([]byte, error) {
	png, err := qrcode.Encode(s.TrackingURL(order), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("génération QR code: %w", err)
	}
	return png, nil
}
