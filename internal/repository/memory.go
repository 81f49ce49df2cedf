package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"mars_shop/internal/models"
)

func NewMemory() Repositories {
	return Repositories{
		Products:   &MemoryProducts{items: map[string]models.Product{}},
		Categories: &MemoryCategories{items: map[string]models.Category{}},
		Orders:     &MemoryOrders{items: map[string]models.Order{}},
		Users:      &MemoryUsers{items: map[string]models.User{}, byEmail: map[string]string{}},
	}
}

type MemoryProducts struct {
	mu    sync.RWMutex
	items map[string]models.Product
}

func (m *MemoryProducts) List(context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryProducts) Get(_ context.Context, id string) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.items[id]
	if !ok {
		return models.Product{}, productNotFound()
	}
	return p, nil
}

func (m *MemoryProducts) Create(_ context.Context, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; ok {
		return alreadyExists("Le produit " + p.ID)
	}
	m.items[p.ID] = p
	return nil
}

func (m *MemoryProducts) Update(_ context.Context, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; !ok {
		return productNotFound()
	}
	m.items[p.ID] = p
	return nil
}

func (m *MemoryProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return productNotFound()
	}
	delete(m.items, id)
	return nil
}

type MemoryCategories struct {
	mu    sync.RWMutex
	items map[string]models.Category
}

func (m *MemoryCategories) List(context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryCategories) Get(_ context.Context, id string) (models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.items[id]
	if !ok {
		return models.Category{}, categoryNotFound()
	}
	return c, nil
}

func (m *MemoryCategories) Create(_ context.Context, c models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; ok {
		return alreadyExists("La catégorie " + c.ID)
	}
	m.items[c.ID] = c
	return nil
}

func (m *MemoryCategories) Update(_ context.Context, c models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; !ok {
		return categoryNotFound()
	}
	m.items[c.ID] = c
	return nil
}

func (m *MemoryCategories) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return categoryNotFound()
	}
	delete(m.items, id)
	return nil
}

type MemoryOrders struct {
	mu    sync.RWMutex
	items map[string]models.Order
}

func (m *MemoryOrders) Create(_ context.Context, o models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[o.ID]; ok {
		return alreadyExists("La commande " + o.ID)
	}
	m.items[o.ID] = cloneOrder(o)
	return nil
}

func (m *MemoryOrders) Get(_ context.Context, id string) (models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.items[id]
	if !ok {
		return models.Order{}, orderNotFound()
	}
	return cloneOrder(o), nil
}

func (m *MemoryOrders) Update(_ context.Context, o models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[o.ID]; !ok {
		return orderNotFound()
	}
	m.items[o.ID] = cloneOrder(o)
	return nil
}

func (m *MemoryOrders) List(context.Context) ([]models.Order, error) {
	return m.filter(func(models.Order) bool { return true }), nil
}

func (m *MemoryOrders) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	return m.filter(func(o models.Order) bool { return o.UserID == userID }), nil
}

func (m *MemoryOrders) filter(keep func(models.Order) bool) []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, 0, len(m.items))
	for _, o := range m.items {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	SortNewestFirst(out)
	return out
}

// Les lignes sont copiées pour que l'appelant ne modifie pas la commande stockée.
func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}

// SortNewestFirst trie par date de création décroissante, puis par id.
func SortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID < orders[j].ID
	})
}

type MemoryUsers struct {
	mu      sync.RWMutex
	items   map[string]models.User
	byEmail map[string]string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (m *MemoryUsers) Create(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := normalizeEmail(u.Email)
	if _, ok := m.byEmail[email]; ok {
		return emailTaken()
	}
	if _, ok := m.items[u.ID]; ok {
		return alreadyExists("L'utilisateur " + u.ID)
	}
	m.items[u.ID] = u
	m.byEmail[email] = u.ID
	return nil
}

func (m *MemoryUsers) Get(_ context.Context, id string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.items[id]
	if !ok {
		return models.User{}, userNotFound()
	}
	return u, nil
}

func (m *MemoryUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[normalizeEmail(email)]
	if !ok {
		return models.User{}, userNotFound()
	}
	return m.items[id], nil
}

func (m *MemoryUsers) Update(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.items[u.ID]
	if !ok {
		return userNotFound()
	}
	oldEmail, newEmail := normalizeEmail(current.Email), normalizeEmail(u.Email)
	if oldEmail != newEmail {
		if _, taken := m.byEmail[newEmail]; taken {
			return emailTaken()
		}
		delete(m.byEmail, oldEmail)
		m.byEmail[newEmail] = u.ID
	}
	m.items[u.ID] = u
	return nil
}

func (m *MemoryUsers) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}
