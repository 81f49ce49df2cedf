package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuditAdminActions journalise les modifications réussies faites par un administrateur.
func AuditAdminActions() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		email := c.GetString(keyEmail)
		log.Printf("📝 Audit: %s %s %s -> %d (%s)", email, c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}
