package middleware

import (
	"github.com/gin-gonic/gin"

	"mars_shop/internal/auth"
	"mars_shop/internal/cart"
	"mars_shop/internal/i18n"
)

const (
	keySession = "auth_session"
	keyUserID  = "user_id"
	keyEmail   = "email"
	keyIsAdmin = "isAdmin"
	keyGuestID = "guest_id"
	keyLang    = "lang"
)

func setSession(c *gin.Context, s auth.Session) {
	c.Set(keySession, s)
	c.Set(keyUserID, s.User.ID)
	c.Set(keyEmail, s.User.Email)
	c.Set(keyIsAdmin, s.User.IsAdmin)
}

// CurrentSession renvoie la session authentifiée de la requête, si elle existe.
func CurrentSession(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(keySession)
	if !ok {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}

func UserID(c *gin.Context) string { return c.GetString(keyUserID) }

func IsAdmin(c *gin.Context) bool { return c.GetBool(keyIsAdmin) }

func GuestID(c *gin.Context) string { return c.GetString(keyGuestID) }

// Owner : propriétaire du panier, l'utilisateur connecté ou à défaut l'invité.
func Owner(c *gin.Context) string {
	if id := UserID(c); id != "" {
		return cart.UserOwner(id)
	}
	if id := GuestID(c); id != "" {
		return cart.GuestOwner(id)
	}
	return ""
}

func Lang(c *gin.Context) i18n.Language {
	if v, ok := c.Get(keyLang); ok {
		if lang, ok := v.(i18n.Language); ok {
			return lang
		}
	}
	return i18n.Default
}
