package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"mars_shop/internal/cart"
	"mars_shop/internal/handlers"
	"mars_shop/internal/middleware"
)

const wsPingInterval = 30 * time.Second

// CartEvents publie les changements de panier (cart.RedisStorage).
type CartEvents interface {
	Subscribe(ctx context.Context, owner string) *redis.PubSub
}

// allowOrigins accepte les clients sans en-tête Origin (hors navigateur) et
// les origines listées.
func allowOrigins(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

type cartMessage struct {
	Type string            `json:"type"`
	Cart handlers.CartView `json:"cart"`
}

// CartWebSocket envoie l'état du panier à la connexion puis à chaque
// modification publiée sur le canal cart:<owner>.
func (h *Handler) CartWebSocket(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	lang := middleware.Lang(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Lecture en tâche de fond pour détecter la fermeture côté client.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var events <-chan *redis.Message
	if h.events != nil {
		pubsub := h.events.Subscribe(ctx, o)
		defer pubsub.Close()
		events = pubsub.Channel()
	}

	send := func(kind string) bool {
		store, err := h.carts.Open(ctx, o)
		if err != nil {
			log.Printf("⚠️ Lecture panier %s pour le websocket: %v", o, err)
			return true
		}
		if err := conn.WriteJSON(cartMessage{Type: kind, Cart: handlers.Cart(store, lang)}); err != nil {
			log.Printf("❌ Erreur envoi WebSocket: %v", err)
			return false
		}
		return true
	}

	if !send("connected") {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			if msg.Payload == cart.EventUpdated || msg.Payload == cart.EventCleared {
				if !send("cart_updated") {
					return
				}
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
