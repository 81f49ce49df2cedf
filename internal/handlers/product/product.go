package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/catalog"
	"mars_shop/internal/handlers"
	"mars_shop/internal/middleware"
	"mars_shop/internal/models"
	"mars_shop/internal/services"
)

type Handler struct {
	catalog *catalog.Service
	images  *services.ImageStore
}

// New : images peut être nil quand MinIO n'est pas configuré.
func New(c *catalog.Service, images *services.ImageStore) *Handler {
	return &Handler{catalog: c, images: images}
}

func (h *Handler) ListProducts(c *gin.Context) {
	var q catalog.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		apperr.Respond(c, apperr.Validation("Paramètres de recherche invalides"))
		return
	}
	page, err := h.catalog.List(c.Request.Context(), q)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":   handlers.Products(page.Products, middleware.Lang(c)),
		"pagination": page.Pagination,
	})
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, handlers.Product(p, middleware.Lang(c)))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	created, err := h.catalog.Create(c.Request.Context(), p)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	updated, err := h.catalog.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
