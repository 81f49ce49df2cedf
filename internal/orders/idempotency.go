package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyTTL = 24 * time.Hour
	pendingMarker  = "pending"
)

// Guard réserve une clé Idempotency-Key le temps de créer la commande.
// Reserve renvoie l'id de la commande déjà créée pour cette clé, s'il existe.
type Guard interface {
	Reserve(ctx context.Context, scope, key string) (existingOrderID string, reserved bool, err error)
	Complete(ctx context.Context, scope, key, orderID string) error
	Release(ctx context.Context, scope, key string) error
}

func idempotencyKey(scope, key string) string {
	return "idempotency:order:" + scope + ":" + key
}

type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) Reserve(ctx context.Context, scope, key string) (string, bool, error) {
	k := idempotencyKey(scope, key)
	ok, err := g.client.SetNX(ctx, k, pendingMarker, IdempotencyTTL).Result()
	if err != nil {
		return "", false, err
	}
	if ok {
		return "", true, nil
	}
	existing, err := g.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expirée entre les deux appels : on retente une fois.
		ok, err = g.client.SetNX(ctx, k, pendingMarker, IdempotencyTTL).Result()
		return "", ok, err
	}
	if err != nil {
		return "", false, err
	}
	if existing == pendingMarker {
		return "", false, nil
	}
	return existing, false, nil
}

func (g *RedisGuard) Complete(ctx context.Context, scope, key, orderID string) error {
	return g.client.Set(ctx, idempotencyKey(scope, key), orderID, IdempotencyTTL).Err()
}

func (g *RedisGuard) Release(ctx context.Context, scope, key string) error {
	return g.client.Del(ctx, idempotencyKey(scope, key)).Err()
}

type memoryEntry struct {
	orderID string
	expires time.Time
}

// MemoryGuard : même contrat que RedisGuard, pour une instance unique.
type MemoryGuard struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{entries: make(map[string]memoryEntry), now: time.Now}
}

func (g *MemoryGuard) Reserve(_ context.Context, scope, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := idempotencyKey(scope, key)
	if e, ok := g.entries[k]; ok && g.now().Before(e.expires) {
		return e.orderID, false, nil
	}
	g.entries[k] = memoryEntry{expires: g.now().Add(IdempotencyTTL)}
	return "", true, nil
}

func (g *MemoryGuard) Complete(_ context.Context, scope, key, orderID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[idempotencyKey(scope, key)] = memoryEntry{orderID: orderID, expires: g.now().Add(IdempotencyTTL)}
	return nil
}

func (g *MemoryGuard) Release(_ context.Context, scope, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, idempotencyKey(scope, key))
	return nil
}
