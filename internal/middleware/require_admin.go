package middleware

import (
	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
)

// RequireAdmin vérifie que l'utilisateur connecté est administrateur.
// À placer après AuthRequired.
func RequireAdmin(c *gin.Context) {
	if !IsAdmin(c) {
		apperr.Respond(c, apperr.Forbidden("Accès réservé aux administrateurs"))
		return
	}
	c.Next()
}
