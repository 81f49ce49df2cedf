// Package catalog expose les produits et catégories de la boutique : liste
// filtrée et paginée, recherche, gestion par les administrateurs.
package catalog

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mars_shop/internal/apperr"
	"mars_shop/internal/cache"
	"mars_shop/internal/models"
	"mars_shop/internal/repository"
)

const (
	indexTimeout = 10 * time.Second
	searchSize   = 200
)

// SearchIndex : moteur de recherche plein texte (Elasticsearch).
type SearchIndex interface {
	Search(ctx context.Context, query string, size int) ([]string, error)
	Index(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}

type Deps struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Cache      *cache.Cache
	Index      SearchIndex
}

type Service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      *cache.Cache
	index      SearchIndex
	now        func() time.Time
	background func(func())
}

func NewService(d Deps) *Service {
	return &Service{
		products:   d.Products,
		categories: d.Categories,
		cache:      d.Cache,
		index:      d.Index,
		now:        time.Now,
		background: func(f func()) { go f() },
	}
}

// List filtre, trie puis pagine. Sans tri explicite, une recherche
// Elasticsearch garde l'ordre de pertinence.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	relevance := q.Sort == "" && strings.TrimSpace(q.Search) != ""
	q = q.Normalize()

	all, err := s.products.List(ctx)
	if err != nil {
		return Page{}, err
	}

	var ranked []models.Product
	if q.Search != "" {
		ranked = s.search(ctx, all, q.Search)
	} else {
		ranked = all
		relevance = false
	}

	filtered := make([]models.Product, 0, len(ranked))
	for _, p := range ranked {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		filtered = append(filtered, p)
	}
	if !relevance {
		sortProducts(filtered, q.Sort)
	}
	return paginate(filtered, q), nil
}

// search interroge Elasticsearch quand il est configuré ; en cas d'échec ou
// sans index, recherche une sous-chaîne dans le nom et la description.
func (s *Service) search(ctx context.Context, all []models.Product, text string) []models.Product {
	if s.index != nil {
		ids, err := s.index.Search(ctx, text, searchSize)
		if err == nil {
			byID := make(map[string]models.Product, len(all))
			for _, p := range all {
				byID[p.ID] = p
			}
			out := make([]models.Product, 0, len(ids))
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					out = append(out, p)
				}
			}
			return out
		}
		log.Printf("⚠️ Recherche Elasticsearch indisponible, repli local: %v", err)
	}

	out := make([]models.Product, 0)
	for _, p := range all {
		if matchesText(p, text) {
			out = append(out, p)
		}
	}
	return out
}

// Get lit un produit à travers le cache Redis product:<id>.
func (s *Service) Get(ctx context.Context, id string) (models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ProductKey(id), cache.ProductCacheTTL,
		func(ctx context.Context) (models.Product, error) {
			return s.products.Get(ctx, id)
		})
}

func (s *Service) validate(ctx context.Context, p models.Product) error {
	var fields []string
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, "name")
	}
	if len(p.Images) == 0 {
		fields = append(fields, "images")
	}
	if p.Price.IsNegative() {
		fields = append(fields, "price")
	}
	if p.Stock < 0 {
		fields = append(fields, "stock")
	}
	if p.Category == "" {
		fields = append(fields, "category")
	} else if _, err := s.categories.Get(ctx, p.Category); err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		fields = append(fields, "category")
	}
	if len(fields) > 0 {
		return apperr.Validation("Produit invalide", fields...)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := s.validate(ctx, p); err != nil {
		return models.Product{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	if err := s.products.Create(ctx, p); err != nil {
		return models.Product{}, err
	}
	log.Printf("✅ Produit créé : %s (%s)", p.Name, p.ID)
	s.reindex(p)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if patch.Empty() {
		return models.Product{}, apperr.Validation("Aucune modification fournie")
	}
	current, err := s.products.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	next := patch.Apply(current)
	next.Name = strings.TrimSpace(next.Name)
	if err := s.validate(ctx, next); err != nil {
		return models.Product{}, err
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.products.Update(ctx, next); err != nil {
		return models.Product{}, err
	}
	s.invalidate(ctx, id)
	s.reindex(next)
	return next, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	if s.index != nil {
		s.background(func() {
			ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
			defer cancel()
			if err := s.index.Delete(ctx, id); err != nil {
				log.Printf("⚠️ Désindexation %s: %v", id, err)
			}
		})
	}
	log.Printf("🗑️ Produit supprimé : %s", id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.ProductKey(id)); err != nil {
		log.Printf("⚠️ Invalidation cache produit %s: %v", id, err)
	}
}

func (s *Service) reindex(p models.Product) {
	if s.index == nil {
		return
	}
	s.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		if err := s.index.Index(ctx, p); err != nil {
			log.Printf("⚠️ Indexation %s: %v", p.ID, err)
		}
	})
}

// ReindexAll pousse tout le catalogue dans l'index de recherche (démarrage).
func (s *Service) ReindexAll(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	all, err := s.products.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range all {
		if err := s.index.Index(ctx, p); err != nil {
			return err
		}
	}
	log.Printf("✅ %d produits indexés", len(all))
	return nil
}
