package admin

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	backoffice "mars_shop/internal/admin"
	"mars_shop/internal/apperr"
	"mars_shop/internal/handlers"
	"mars_shop/internal/middleware"
	"mars_shop/internal/models"
)

type Handler struct {
	svc *backoffice.Service
}

func New(svc *backoffice.Service) *Handler {
	return &Handler{svc: svc}
}

// Dashboard renvoie les statistiques du tableau de bord.
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.svc.Orders(c.Request.Context(), models.OrderStatus(c.Query("status")))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, handlers.Orders(list, middleware.Lang(c)))
}

func (h *Handler) CompleteOrder(c *gin.Context) {
	o, err := h.svc.MarkComplete(c.Request.Context(), c.Param("id"))
	h.respondOrder(c, o, err)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	o, err := h.svc.MarkCancelled(c.Request.Context(), c.Param("id"))
	h.respondOrder(c, o, err)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var patch backoffice.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	o, err := h.svc.UpdateOrder(c.Request.Context(), c.Param("id"), patch)
	h.respondOrder(c, o, err)
}

func (h *Handler) respondOrder(c *gin.Context, o models.Order, err error) {
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, handlers.Order(o, middleware.Lang(c)))
}

func (h *Handler) ExportOrders(c *gin.Context) {
	list, err := h.svc.Orders(c.Request.Context(), models.OrderStatus(c.Query("status")))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	var buf bytes.Buffer
	if err := backoffice.WriteOrdersXLSX(&buf, list, middleware.Lang(c)); err != nil {
		log.Printf("❌ Erreur export commandes: %v", err)
		apperr.Respond(c, err)
		return
	}
	sendWorkbook(c, "commandes", buf.Bytes())
}

func (h *Handler) ExportProducts(c *gin.Context) {
	list, err := h.svc.Products(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	var buf bytes.Buffer
	if err := backoffice.WriteProductsXLSX(&buf, list, middleware.Lang(c)); err != nil {
		log.Printf("❌ Erreur export produits: %v", err)
		apperr.Respond(c, err)
		return
	}
	sendWorkbook(c, "produits", buf.Bytes())
}

func sendWorkbook(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, backoffice.XLSXContentType, data)
}
