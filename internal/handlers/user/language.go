package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/i18n"
	"mars_shop/internal/middleware"
)

func Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": i18n.Languages(), "current": middleware.Lang(c)})
}

func Dictionary(c *gin.Context) {
	lang, ok := i18n.Parse(c.Param("lang"))
	if !ok {
		apperr.Respond(c, apperr.NotFound("Langue non supportée"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "rtl": lang.RTL(), "messages": i18n.Dictionary(lang)})
}

func SetLanguage(c *gin.Context) {
	var in struct {
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	lang, ok := i18n.Parse(in.Language)
	if !ok {
		apperr.Respond(c, apperr.Validation("Langue non supportée", "language"))
		return
	}
	if err := middleware.SaveLanguage(c, lang); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "rtl": lang.RTL()})
}
