package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/cart"
	"mars_shop/internal/handlers"
	"mars_shop/internal/middleware"
)

func owner(c *gin.Context) (string, bool) {
	o := middleware.Owner(c)
	if o == "" {
		apperr.Respond(c, apperr.Auth("Session requise"))
		return "", false
	}
	return o, true
}

func (h *Handler) respondCart(c *gin.Context, store *cart.Store, err error) {
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, handlers.Cart(store, middleware.Lang(c)))
}

func (h *Handler) GetCart(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	store, err := h.carts.Open(c.Request.Context(), o)
	h.respondCart(c, store, err)
}

func (h *Handler) AddToCart(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	var in struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.ProductID == "" {
		apperr.Respond(c, apperr.Validation("productId requis", "productId"))
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	store, err := h.carts.Add(c.Request.Context(), o, in.ProductID, in.Quantity)
	h.respondCart(c, store, err)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	var in struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Quantity == nil {
		apperr.Respond(c, apperr.Validation("quantity requis", "quantity"))
		return
	}
	store, err := h.carts.SetQuantity(c.Request.Context(), o, c.Param("productId"), *in.Quantity)
	h.respondCart(c, store, err)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	store, err := h.carts.Remove(c.Request.Context(), o, c.Param("productId"))
	h.respondCart(c, store, err)
}

func (h *Handler) ClearCart(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	if err := h.carts.Clear(c.Request.Context(), o); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
