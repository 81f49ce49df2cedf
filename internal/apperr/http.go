package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond écrit {"error": ...} avec le statut adapté et interrompt la chaîne gin.
func Respond(c *gin.Context, err error) {
	status := Status(err)

	var e *Error
	if !errors.As(err, &e) {
		log.Printf("❌ Erreur interne sur %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(status, gin.H{"error": "Erreur interne"})
		return
	}

	if e.Kind == KindTransient {
		// Le détail du driver reste dans les logs.
		log.Printf("❌ %s: %v", e.Message, e.Err)
		c.AbortWithStatusJSON(status, gin.H{"error": "Service temporairement indisponible"})
		return
	}

	body := gin.H{"error": e.Message}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
