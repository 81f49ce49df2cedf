package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
)

// NewPostgres crée les tables manquantes puis construit les dépôts gorm.
func NewPostgres(db *gorm.DB) (Repositories, error) {
	if err := db.AutoMigrate(&models.Product{}, &models.Category{}, &models.Order{}, &models.User{}); err != nil {
		return Repositories{}, apperr.Transient("migration Postgres", err)
	}
	return Repositories{
		Products:   &GormProducts{db: db},
		Categories: &GormCategories{db: db},
		Orders:     &GormOrders{db: db},
		Users:      &GormUsers{db: db},
	}, nil
}

func gormErr(op string, err error, notFound func() error, duplicate func() error) error {
	var appErr *apperr.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound()
	case errors.Is(err, gorm.ErrDuplicatedKey) && duplicate != nil:
		return duplicate()
	default:
		return apperr.Transient(op, err)
	}
}

// updateExisting : Save crée la ligne si elle n'existe pas, on vérifie donc avant.
func updateExisting[T any](ctx context.Context, db *gorm.DB, id string, value *T, notFound func() error) error {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.Transient("lecture", err)
	}
	if count == 0 {
		return notFound()
	}
	return db.WithContext(ctx).Save(value).Error
}

type GormProducts struct{ db *gorm.DB }

func (r *GormProducts) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, gormErr("lecture produits", err, nil, nil)
}

func (r *GormProducts) Get(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, gormErr("lecture produit", err, productNotFound, nil)
}

func (r *GormProducts) Create(ctx context.Context, p models.Product) error {
	err := r.db.WithContext(ctx).Create(&p).Error
	return gormErr("création produit", err, nil, func() error { return alreadyExists("Le produit " + p.ID) })
}

func (r *GormProducts) Update(ctx context.Context, p models.Product) error {
	return gormErr("mise à jour produit", updateExisting(ctx, r.db, p.ID, &p, productNotFound), productNotFound, nil)
}

func (r *GormProducts) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Transient("suppression produit", res.Error)
	}
	if res.RowsAffected == 0 {
		return productNotFound()
	}
	return nil
}

type GormCategories struct{ db *gorm.DB }

func (r *GormCategories) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, gormErr("lecture catégories", err, nil, nil)
}

func (r *GormCategories) Get(ctx context.Context, id string) (models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, gormErr("lecture catégorie", err, categoryNotFound, nil)
}

func (r *GormCategories) Create(ctx context.Context, c models.Category) error {
	err := r.db.WithContext(ctx).Create(&c).Error
	return gormErr("création catégorie", err, nil, func() error { return alreadyExists("La catégorie " + c.ID) })
}

func (r *GormCategories) Update(ctx context.Context, c models.Category) error {
	return gormErr("mise à jour catégorie", updateExisting(ctx, r.db, c.ID, &c, categoryNotFound), categoryNotFound, nil)
}

func (r *GormCategories) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Transient("suppression catégorie", res.Error)
	}
	if res.RowsAffected == 0 {
		return categoryNotFound()
	}
	return nil
}

type GormOrders struct{ db *gorm.DB }

func (r *GormOrders) Create(ctx context.Context, o models.Order) error {
	err := r.db.WithContext(ctx).Create(&o).Error
	return gormErr("création commande", err, nil, func() error { return alreadyExists("La commande " + o.ID) })
}

func (r *GormOrders) Get(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return o, gormErr("lecture commande", err, orderNotFound, nil)
}

func (r *GormOrders) Update(ctx context.Context, o models.Order) error {
	return gormErr("mise à jour commande", updateExisting(ctx, r.db, o.ID, &o, orderNotFound), orderNotFound, nil)
}

func (r *GormOrders) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).Order("created_at DESC, id").Find(&out).Error
	return out, gormErr("lecture commandes", err, nil, nil)
}

func (r *GormOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id").Find(&out).Error
	return out, gormErr("lecture commandes utilisateur", err, nil, nil)
}

type GormUsers struct{ db *gorm.DB }

func (r *GormUsers) Create(ctx context.Context, u models.User) error {
	u.Email = normalizeEmail(u.Email)
	err := r.db.WithContext(ctx).Create(&u).Error
	return gormErr("création utilisateur", err, nil, emailTaken)
}

func (r *GormUsers) Get(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, gormErr("lecture utilisateur", err, userNotFound, nil)
}

func (r *GormUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", normalizeEmail(email)).Error
	return u, gormErr("lecture utilisateur", err, userNotFound, nil)
}

func (r *GormUsers) Update(ctx context.Context, u models.User) error {
	u.Email = normalizeEmail(u.Email)
	return gormErr("mise à jour utilisateur", updateExisting(ctx, r.db, u.ID, &u, userNotFound), userNotFound, emailTaken)
}

func (r *GormUsers) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, apperr.Transient("comptage utilisateurs", err)
	}
	return int(count), nil
}
