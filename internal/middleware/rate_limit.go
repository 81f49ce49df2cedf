package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"mars_shop/internal/cache"
)

const (
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3
	APIMaxRequests      = 100
	CartMaxRequests     = 20
	CheckoutMaxRequests = 10

	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
	APICooldown      = 1 * time.Minute
)

// Limit décrit une limite : au plus Max requêtes par fenêtre Window, comptées
// par clé. Seules les réponses retenues par Count sont comptées (toutes si nil).
type Limit struct {
	Name    string
	Max     int64
	Window  time.Duration
	Key     func(c *gin.Context) string
	Count   func(status int) bool
	Message string
}

func byIP(c *gin.Context) string { return c.ClientIP() }

func byOwner(c *gin.Context) string {
	if owner := Owner(c); owner != "" {
		return owner
	}
	return c.ClientIP()
}

// RateLimit applique la limite avec des compteurs Redis. Sans Redis, ou si
// Redis est en panne, la requête passe.
func RateLimit(client *redis.Client, l Limit) gin.HandlerFunc {
	if l.Key == nil {
		l.Key = byIP
	}
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", l.Name, l.Key(c))

		current, err := client.Get(ctx, key).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ Rate limit %s indisponible: %v", l.Name, err)
			c.Next()
			return
		}
		if current >= l.Max {
			ttl := client.TTL(ctx, key).Val()
			if ttl <= 0 {
				ttl = l.Window
			}
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       l.Message,
				"retry_after": int(ttl.Seconds()),
			})
			return
		}

		if l.Count == nil {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(l.Max, 10))
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(l.Max-current-1, 0), 10))
			if _, err := cache.IncrementRateLimit(ctx, client, key, l.Window); err != nil {
				log.Printf("⚠️ Rate limit %s: %v", l.Name, err)
			}
			c.Next()
			return
		}

		c.Next()
		if l.Count(c.Writer.Status()) {
			if _, err := cache.IncrementRateLimit(ctx, client, key, l.Window); err != nil {
				log.Printf("⚠️ Rate limit %s: %v", l.Name, err)
			}
		}
	}
}

// LoginRateLimit bloque une IP après 5 échecs de connexion.
func LoginRateLimit(client *redis.Client) gin.HandlerFunc {
	return RateLimit(client, Limit{
		Name:    "login",
		Max:     LoginMaxAttempts,
		Window:  LoginCooldown,
		Count:   func(status int) bool { return status == http.StatusUnauthorized },
		Message: fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(LoginCooldown.Minutes())),
	})
}

// RegisterRateLimit limite les inscriptions réussies par IP.
func RegisterRateLimit(client *redis.Client) gin.HandlerFunc {
	return RateLimit(client, Limit{
		Name:    "register",
		Max:     RegisterMaxAttempts,
		Window:  RegisterCooldown,
		Count:   func(status int) bool { return status == http.StatusCreated },
		Message: fmt.Sprintf("Trop d'inscriptions. Réessayez dans %d minutes", int(RegisterCooldown.Minutes())),
	})
}

func APIRateLimit(client *redis.Client) gin.HandlerFunc {
	return RateLimit(client, Limit{
		Name:    "api",
		Max:     APIMaxRequests,
		Window:  APICooldown,
		Message: "Trop de requêtes. Réessayez dans 1 minute",
	})
}

// CartRateLimit : anti-spam sur les modifications du panier.
func CartRateLimit(client *redis.Client) gin.HandlerFunc {
	return RateLimit(client, Limit{
		Name:    "cart",
		Max:     CartMaxRequests,
		Window:  time.Minute,
		Key:     byOwner,
		Message: "Trop de modifications du panier. Ralentissez un peu",
	})
}

func CheckoutRateLimit(client *redis.Client) gin.HandlerFunc {
	return RateLimit(client, Limit{
		Name:    "checkout",
		Max:     CheckoutMaxRequests,
		Window:  time.Minute,
		Key:     byOwner,
		Message: "Trop de commandes. Réessayez dans 1 minute",
	})
}
