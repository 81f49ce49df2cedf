package repository

import (
	"context"
	"time"

	"github.com/gocql/gocql"
	"gopkg.in/inf.v0"

	"mars_shop/internal/models"
)

const orderColumns = `order_id, user_id, customer_name, customer_phone, customer_address, items, total, status, notes, created_at, updated_at`

// ScyllaOrders : table orders + index orders_by_user (user_id, created_at DESC).
type ScyllaOrders struct {
	session *gocql.Session
}

func scanOrder(scan func(dest ...any) error) (models.Order, error) {
	var (
		o      models.Order
		items  string
		total  inf.Dec
		status string
	)
	if err := scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
		&items, &total, &status, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return models.Order{}, err
	}
	o.Total = fromDec(&total)
	o.Status = models.OrderStatus(status)
	if err := fromJSON(items, &o.Items); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *ScyllaOrders) insert(ctx context.Context, o models.Order) error {
	items, err := toJSON(o.Items)
	if err != nil {
		return err
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = time.Now().UTC()
	}
	return r.session.Query(`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.CustomerName, o.CustomerPhone, o.CustomerAddress, items,
		toDec(o.Total), string(o.Status), o.Notes, o.CreatedAt, o.UpdatedAt).WithContext(ctx).Exec()
}

func (r *ScyllaOrders) Create(ctx context.Context, o models.Order) error {
	if err := r.insert(ctx, o); err != nil {
		return scyllaErr("création commande", err, nil)
	}
	if o.UserID != "" {
		err := r.session.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id) VALUES (?, ?, ?)`,
			o.UserID, o.CreatedAt, o.ID).WithContext(ctx).Exec()
		if err != nil {
			return scyllaErr("index commandes utilisateur", err, nil)
		}
	}
	return nil
}

func (r *ScyllaOrders) Get(ctx context.Context, id string) (models.Order, error) {
	q := r.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id).WithContext(ctx)
	o, err := scanOrder(q.Scan)
	if err != nil {
		return models.Order{}, scyllaErr("lecture commande", err, orderNotFound)
	}
	return o, nil
}

func (r *ScyllaOrders) Update(ctx context.Context, o models.Order) error {
	if _, err := r.Get(ctx, o.ID); err != nil {
		return err
	}
	return scyllaErr("mise à jour commande", r.insert(ctx, o), nil)
}

func (r *ScyllaOrders) List(ctx context.Context) ([]models.Order, error) {
	iter := r.session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter()
	scanner := iter.Scanner()

	var out []models.Order
	for scanner.Next() {
		o, err := scanOrder(scanner.Scan)
		if err != nil {
			iter.Close()
			return nil, scyllaErr("lecture commandes", err, nil)
		}
		out = append(out, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, scyllaErr("lecture commandes", err, nil)
	}
	SortNewestFirst(out)
	return out, nil
}

func (r *ScyllaOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := r.session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID).WithContext(ctx).Iter()
	var (
		ids []string
		id  string
	)
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, scyllaErr("lecture commandes utilisateur", err, nil)
	}

	out := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	SortNewestFirst(out)
	return out, nil
}
