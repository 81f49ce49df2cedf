package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/handlers"
	"mars_shop/internal/middleware"
	"mars_shop/internal/orders"
)

const IdempotencyHeader = "Idempotency-Key"

func (h *Handler) respondPlaced(c *gin.Context, res orders.Result, err error) {
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, handlers.Order(res.Order, middleware.Lang(c)))
}

// Checkout crée une commande à partir du panier puis le vide.
func (h *Handler) Checkout(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	var customer orders.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	res, err := h.orders.PlaceFromCart(c.Request.Context(), o, middleware.UserID(c), customer, c.GetHeader(IdempotencyHeader))
	h.respondPlaced(c, res, err)
}

// PlaceOrder commande directement un produit (bouton "Commander").
func (h *Handler) PlaceOrder(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	var in struct {
		orders.Customer
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	if in.ProductID == "" {
		apperr.Respond(c, apperr.Validation("productId requis", "productId"))
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	res, err := h.orders.PlaceDirect(c.Request.Context(), o, middleware.UserID(c), in.Customer, in.ProductID, in.Quantity, c.GetHeader(IdempotencyHeader))
	h.respondPlaced(c, res, err)
}

func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.orders.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, handlers.Orders(list, middleware.Lang(c)))
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, handlers.Order(o, middleware.Lang(c)))
}

func (h *Handler) OrderQRCode(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	png, err := h.orders.QRCode(o)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
