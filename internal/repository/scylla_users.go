package repository

import (
	"context"

	"github.com/gocql/gocql"

	"mars_shop/internal/models"
)

const userColumns = `user_id, name, email, phone, address, password_hash, is_admin, created_at, updated_at`

// ScyllaUsers : l'unicité de l'email repose sur users_by_email (LWT IF NOT EXISTS).
type ScyllaUsers struct {
	session *gocql.Session
}

func (r *ScyllaUsers) claimEmail(ctx context.Context, email, userID string) (bool, error) {
	return r.session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?) IF NOT EXISTS`, email, userID).
		WithContext(ctx).MapScanCAS(map[string]interface{}{})
}

func (r *ScyllaUsers) insert(ctx context.Context, u models.User) error {
	return r.session.Query(`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Phone, u.Address, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt).
		WithContext(ctx).Exec()
}

func (r *ScyllaUsers) Create(ctx context.Context, u models.User) error {
	u.Email = normalizeEmail(u.Email)
	applied, err := r.claimEmail(ctx, u.Email, u.ID)
	if err != nil {
		return scyllaErr("réservation email", err, nil)
	}
	if !applied {
		return emailTaken()
	}
	if err := r.insert(ctx, u); err != nil {
		// Libère l'email pour ne pas bloquer une nouvelle inscription.
		_ = r.session.Query(`DELETE FROM users_by_email WHERE email = ?`, u.Email).WithContext(ctx).Exec()
		return scyllaErr("création utilisateur", err, nil)
	}
	return nil
}

func (r *ScyllaUsers) Get(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.session.Query(`SELECT `+userColumns+` FROM users WHERE user_id = ?`, id).WithContext(ctx).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, scyllaErr("lecture utilisateur", err, userNotFound)
	}
	return u, nil
}

func (r *ScyllaUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var id string
	err := r.session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, normalizeEmail(email)).
		WithContext(ctx).Scan(&id)
	if err != nil {
		return models.User{}, scyllaErr("lecture email", err, userNotFound)
	}
	return r.Get(ctx, id)
}

func (r *ScyllaUsers) Update(ctx context.Context, u models.User) error {
	current, err := r.Get(ctx, u.ID)
	if err != nil {
		return err
	}
	u.Email = normalizeEmail(u.Email)
	if u.Email != current.Email {
		applied, err := r.claimEmail(ctx, u.Email, u.ID)
		if err != nil {
			return scyllaErr("réservation email", err, nil)
		}
		if !applied {
			return emailTaken()
		}
	}
	if err := r.insert(ctx, u); err != nil {
		return scyllaErr("mise à jour utilisateur", err, nil)
	}
	if u.Email != current.Email {
		if err := r.session.Query(`DELETE FROM users_by_email WHERE email = ?`, current.Email).WithContext(ctx).Exec(); err != nil {
			return scyllaErr("libération ancien email", err, nil)
		}
	}
	return nil
}

func (r *ScyllaUsers) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.session.Query(`SELECT COUNT(*) FROM users`).WithContext(ctx).Scan(&count); err != nil {
		return 0, scyllaErr("comptage utilisateurs", err, nil)
	}
	return int(count), nil
}
