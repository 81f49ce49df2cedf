package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/i18n"
	"mars_shop/internal/middleware"
	"mars_shop/internal/models"
)

type categoryView struct {
	models.Category
	Label string `json:"label"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	lang := middleware.Lang(c)
	out := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryView{Category: cat, Label: i18n.TranslateCategory(cat.ID, lang)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	created, err := h.catalog.CreateCategory(c.Request.Context(), cat)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	updated, err := h.catalog.UpdateCategory(c.Request.Context(), c.Param("id"), cat)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
