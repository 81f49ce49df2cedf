package repository

import (
	"context"
	"time"

	"github.com/gocql/gocql"
	"gopkg.in/inf.v0"

	"mars_shop/internal/models"
)

const productColumns = `product_id, name, description, price, images, category, stock, featured, colors, sizes, created_at, updated_at`

type ScyllaProducts struct {
	session *gocql.Session
}

func scanProduct(scan func(dest ...any) error) (models.Product, error) {
	var (
		p             models.Product
		price         inf.Dec
		colors, sizes string
	)
	if err := scan(&p.ID, &p.Name, &p.Description, &price, &p.Images, &p.Category, &p.Stock,
		&p.Featured, &colors, &sizes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Product{}, err
	}
	p.Price = fromDec(&price)
	if err := fromJSON(colors, &p.Colors); err != nil {
		return models.Product{}, err
	}
	if err := fromJSON(sizes, &p.Sizes); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *ScyllaProducts) List(ctx context.Context) ([]models.Product, error) {
	iter := r.session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()
	scanner := iter.Scanner()

	var out []models.Product
	for scanner.Next() {
		p, err := scanProduct(scanner.Scan)
		if err != nil {
			iter.Close()
			return nil, scyllaErr("lecture produits", err, nil)
		}
		out = append(out, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, scyllaErr("lecture produits", err, nil)
	}
	return out, nil
}

func (r *ScyllaProducts) Get(ctx context.Context, id string) (models.Product, error) {
	q := r.session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).WithContext(ctx)
	p, err := scanProduct(q.Scan)
	if err != nil {
		return models.Product{}, scyllaErr("lecture produit", err, productNotFound)
	}
	return p, nil
}

func (r *ScyllaProducts) write(ctx context.Context, p models.Product, cond string) (bool, error) {
	colors, err := toJSON(p.Colors)
	if err != nil {
		return false, err
	}
	sizes, err := toJSON(p.Sizes)
	if err != nil {
		return false, err
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	q := r.session.Query(`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) `+cond,
		p.ID, p.Name, p.Description, toDec(p.Price), p.Images, p.Category, p.Stock, p.Featured,
		colors, sizes, p.CreatedAt, p.UpdatedAt).WithContext(ctx)
	if cond == "" {
		return true, q.Exec()
	}
	return q.MapScanCAS(map[string]interface{}{})
}

func (r *ScyllaProducts) Create(ctx context.Context, p models.Product) error {
	applied, err := r.write(ctx, p, "IF NOT EXISTS")
	if err != nil {
		return scyllaErr("création produit", err, nil)
	}
	if !applied {
		return alreadyExists("Le produit " + p.ID)
	}
	return nil
}

func (r *ScyllaProducts) Update(ctx context.Context, p models.Product) error {
	if _, err := r.Get(ctx, p.ID); err != nil {
		return err
	}
	_, err := r.write(ctx, p, "")
	return scyllaErr("mise à jour produit", err, nil)
}

func (r *ScyllaProducts) Delete(ctx context.Context, id string) error {
	applied, err := r.session.Query(`DELETE FROM products WHERE product_id = ? IF EXISTS`, id).
		WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return scyllaErr("suppression produit", err, nil)
	}
	if !applied {
		return productNotFound()
	}
	return nil
}

type ScyllaCategories struct {
	session *gocql.Session
}

func (r *ScyllaCategories) List(ctx context.Context) ([]models.Category, error) {
	iter := r.session.Query(`SELECT category_id, name, description, icon FROM categories`).WithContext(ctx).Iter()
	var (
		out []models.Category
		c   models.Category
	)
	for iter.Scan(&c.ID, &c.Name, &c.Description, &c.Icon) {
		out = append(out, c)
	}
	if err := iter.Close(); err != nil {
		return nil, scyllaErr("lecture catégories", err, nil)
	}
	return out, nil
}

func (r *ScyllaCategories) Get(ctx context.Context, id string) (models.Category, error) {
	c := models.Category{ID: id}
	err := r.session.Query(`SELECT name, description, icon FROM categories WHERE category_id = ?`, id).
		WithContext(ctx).Scan(&c.Name, &c.Description, &c.Icon)
	if err != nil {
		return models.Category{}, scyllaErr("lecture catégorie", err, categoryNotFound)
	}
	return c, nil
}

func (r *ScyllaCategories) Create(ctx context.Context, c models.Category) error {
	applied, err := r.session.Query(`INSERT INTO categories (category_id, name, description, icon) VALUES (?, ?, ?, ?) IF NOT EXISTS`,
		c.ID, c.Name, c.Description, c.Icon).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return scyllaErr("création catégorie", err, nil)
	}
	if !applied {
		return alreadyExists("La catégorie " + c.ID)
	}
	return nil
}

func (r *ScyllaCategories) Update(ctx context.Context, c models.Category) error {
	applied, err := r.session.Query(`UPDATE categories SET name = ?, description = ?, icon = ? WHERE category_id = ? IF EXISTS`,
		c.Name, c.Description, c.Icon, c.ID).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return scyllaErr("mise à jour catégorie", err, nil)
	}
	if !applied {
		return categoryNotFound()
	}
	return nil
}

func (r *ScyllaCategories) Delete(ctx context.Context, id string) error {
	applied, err := r.session.Query(`DELETE FROM categories WHERE category_id = ? IF EXISTS`, id).
		WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return scyllaErr("suppression catégorie", err, nil)
	}
	if !applied {
		return categoryNotFound()
	}
	return nil
}
