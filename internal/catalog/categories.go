package catalog

import (
	"context"
	"log"
	"strings"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
)

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CreateCategory : l'id est dérivé du nom quand il n'est pas fourni.
func (s *Service) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Category{}, apperr.Validation("Le nom de la catégorie est obligatoire", "name")
	}
	if c.ID == "" {
		c.ID = slug(c.Name)
	}
	if c.ID == "" {
		return models.Category{}, apperr.Validation("Identifiant de catégorie invalide", "id")
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return models.Category{}, err
	}
	log.Printf("✅ Catégorie créée : %s", c.ID)
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, c models.Category) (models.Category, error) {
	current, err := s.categories.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	if name := strings.TrimSpace(c.Name); name != "" {
		current.Name = name
	}
	if c.Description != "" {
		current.Description = c.Description
	}
	if c.Icon != "" {
		current.Icon = c.Icon
	}
	if err := s.categories.Update(ctx, current); err != nil {
		return models.Category{}, err
	}
	return current, nil
}

// DeleteCategory refuse de supprimer une catégorie encore utilisée.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	products, err := s.products.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.Category == id {
			return apperr.Conflict("Catégorie utilisée par des produits")
		}
	}
	return s.categories.Delete(ctx, id)
}
