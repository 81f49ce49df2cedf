package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const CartTTL = 30 * 24 * time.Hour // 30 jours

// Messages publiés sur le canal du panier.
const (
	EventUpdated = "updated"
	EventCleared = "cleared"
)

// RedisStorage stocke le snapshot sous cart:<owner> et notifie les abonnés
// (websocket) sur le canal du même nom.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client, ttl: CartTTL}
}

func Key(owner string) string { return "cart:" + owner }

func (r *RedisStorage) Load(ctx context.Context, owner string) ([]byte, error) {
	data, err := r.client.Get(ctx, Key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (r *RedisStorage) Save(ctx context.Context, owner string, data []byte) error {
	pipe := r.client.Pipeline()
	pipe.Set(ctx, Key(owner), data, r.ttl)
	pipe.Publish(ctx, Key(owner), EventUpdated)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisStorage) Delete(ctx context.Context, owner string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, Key(owner))
	pipe.Publish(ctx, Key(owner), EventCleared)
	_, err := pipe.Exec(ctx)
	return err
}

// Subscribe ouvre un abonnement aux changements du panier ; l'appelant le ferme.
func (r *RedisStorage) Subscribe(ctx context.Context, owner string) *redis.PubSub {
	return r.client.Subscribe(ctx, Key(owner))
}
