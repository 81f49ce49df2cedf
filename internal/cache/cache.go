// Package cache regroupe les accès Redis partagés : lecture à travers un
// cache versionné, liste noire des jetons et compteurs de limitation.
// Un *Cache nil est valide et ne met rien en cache.
package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"mars_shop/internal/snapshot"
)

const (
	SessionCacheTTL = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

func SessionKey(userID string) string    { return "session:" + userID }
func ProductKey(productID string) string { return "product:" + productID }

type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Get lit une entrée et la décode dans v. Une entrée illisible est supprimée
// et traitée comme absente.
func (c *Cache) Get(ctx context.Context, key string, v any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := snapshot.Decode(raw, v); err != nil {
		log.Printf("⚠️ Entrée cache %s illisible, suppression: %v", key, err)
		c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	raw, err := snapshot.Encode(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Fetch : lecture à travers le cache. Une panne Redis est journalisée et
// la valeur est lue à la source.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var v T
	hit, err := c.Get(ctx, key, &v)
	if err != nil {
		log.Printf("⚠️ Cache Redis indisponible pour %s: %v", key, err)
	}
	if hit {
		return v, nil
	}

	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := c.Set(ctx, key, v, ttl); err != nil {
		log.Printf("⚠️ Mise en cache %s impossible: %v", key, err)
	}
	return v, nil
}
