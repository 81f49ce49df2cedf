package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/auth"
)

const TokenCookie = "token"

type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (auth.Session, error)
}

// TokenFromRequest lit le jeton dans le cookie "token" puis dans
// l'en-tête Authorization: Bearer.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func resolve(c *gin.Context, a Authenticator) error {
	raw := TokenFromRequest(c)
	if raw == "" {
		return apperr.Auth("Token manquant")
	}
	s, err := a.Authenticate(c.Request.Context(), raw)
	if err != nil {
		return err
	}
	setSession(c, s)
	return nil
}

// OptionalAuth attache l'identité quand un jeton valide est présent.
// Un jeton invalide équivaut à une requête anonyme.
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := resolve(c, a); err != nil && !apperr.Is(err, apperr.KindAuth) {
			log.Printf("⚠️ Résolution de session impossible: %v", err)
		}
		c.Next()
	}
}

func AuthRequired(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); ok {
			c.Next()
			return
		}
		if err := resolve(c, a); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Next()
	}
}
