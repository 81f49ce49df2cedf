package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"mars_shop/internal/i18n"
)

const (
	SessionName     = "mars-shop"
	sessionGuestKey = "guest_id"
	sessionLangKey  = "lang"
	sessionMaxAge   = 30 * 24 * 3600
	keyStore        = "session_store"
)

// NewSessionStore crée le magasin de cookies signés (identifiant invité et langue).
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Sessions attribue un identifiant invité stable et résout la langue de la
// requête : ?lang= (mémorisée), puis session, puis Accept-Language, puis en.
func Sessions(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, SessionName)
		if err != nil {
			log.Printf("⚠️ Cookie de session illisible, nouvelle session: %v", err)
		}
		dirty := false

		guestID, _ := session.Values[sessionGuestKey].(string)
		if guestID == "" {
			guestID = uuid.NewString()
			session.Values[sessionGuestKey] = guestID
			dirty = true
		}

		stored, _ := session.Values[sessionLangKey].(string)
		lang, fromQuery := i18n.Parse(c.Query("lang"))
		switch {
		case fromQuery:
			if stored != string(lang) {
				session.Values[sessionLangKey] = string(lang)
				dirty = true
			}
		default:
			if l, ok := i18n.Parse(stored); ok {
				lang = l
			} else {
				lang = i18n.Negotiate(c.GetHeader("Accept-Language"))
			}
		}

		if dirty {
			if err := session.Save(c.Request, c.Writer); err != nil {
				log.Printf("⚠️ Sauvegarde session impossible: %v", err)
			}
		}

		c.Set(keyGuestID, guestID)
		c.Set(keyLang, lang)
		c.Set(keyStore, store)
		c.Next()
	}
}

// SaveLanguage mémorise la langue choisie dans la session cookie.
func SaveLanguage(c *gin.Context, lang i18n.Language) error {
	c.Set(keyLang, lang)
	v, ok := c.Get(keyStore)
	if !ok {
		return nil
	}
	store := v.(sessions.Store)
	session, _ := store.Get(c.Request, SessionName)
	session.Values[sessionLangKey] = string(lang)
	return session.Save(c.Request, c.Writer)
}
