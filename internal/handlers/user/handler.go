package user

import (
	"github.com/gorilla/websocket"

	"mars_shop/internal/auth"
	"mars_shop/internal/cart"
	"mars_shop/internal/orders"
)

type Handler struct {
	auth         *auth.Service
	carts        *cart.Service
	orders       *orders.Service
	events       CartEvents
	cookieSecure bool
	upgrader     websocket.Upgrader
}

// Deps : Events est nil sans Redis, le websocket n'envoie alors que l'état
// initial. AllowedOrigins reprend CORS_ORIGINS pour le websocket.
type Deps struct {
	Auth           *auth.Service
	Carts          *cart.Service
	Orders         *orders.Service
	Events         CartEvents
	CookieSecure   bool
	AllowedOrigins []string
}

func New(d Deps) *Handler {
	return &Handler{
		auth:         d.Auth,
		carts:        d.Carts,
		orders:       d.Orders,
		events:       d.Events,
		cookieSecure: d.CookieSecure,
		upgrader:     websocket.Upgrader{CheckOrigin: allowOrigins(d.AllowedOrigins)},
	}
}
