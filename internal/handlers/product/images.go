package product

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/services"
)

const maxImageSize = 5 << 20

// UploadImage reçoit le champ multipart "image" et renvoie l'URL MinIO.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.images == nil {
		apperr.Respond(c, apperr.Transient("upload image", errors.New("MinIO non configuré")))
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		apperr.Respond(c, apperr.Validation("Fichier image manquant", "image"))
		return
	}
	if file.Size > maxImageSize {
		apperr.Respond(c, apperr.Validation("Image trop volumineuse (5 Mo maximum)", "image"))
		return
	}

	f, err := file.Open()
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	defer f.Close()

	url, err := h.images.Upload(c.Request.Context(), file.Filename, f, file.Size, file.Header.Get("Content-Type"))
	var unsupported services.ErrUnsupportedImage
	if errors.As(err, &unsupported) {
		apperr.Respond(c, apperr.Validation(unsupported.Error(), "image"))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Transient("upload image", err))
		return
	}
	log.Printf("✅ Image envoyée sur MinIO : %s", url)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
