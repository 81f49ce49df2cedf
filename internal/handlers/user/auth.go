package user

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mars_shop/internal/apperr"
	"mars_shop/internal/auth"
	"mars_shop/internal/cart"
	"mars_shop/internal/middleware"
	"mars_shop/internal/models"
)

func (h *Handler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", h.cookieSecure, true)
}

// startSession pose le cookie et fusionne le panier invité dans celui du compte.
func (h *Handler) startSession(c *gin.Context, status int, s auth.Session) {
	h.setTokenCookie(c, s.Token, int(h.auth.Tokens().TTL().Seconds()))

	if guest := middleware.GuestID(c); guest != "" {
		if _, err := h.carts.Merge(c.Request.Context(), cart.GuestOwner(guest), cart.UserOwner(s.User.ID)); err != nil {
			log.Printf("⚠️ Fusion du panier invité impossible pour %s: %v", s.User.ID, err)
		}
	}
	c.JSON(status, gin.H{"user": s.User, "token": s.Token})
}

func (h *Handler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	s, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	h.startSession(c, http.StatusCreated, s)
}

func (h *Handler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		apperr.Respond(c, apperr.Validation("Email et mot de passe requis", "email", "password"))
		return
	}
	s, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	h.startSession(c, http.StatusOK, s)
}

func (h *Handler) Logout(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	if err := h.auth.Logout(c.Request.Context(), s.Claims); err != nil {
		apperr.Respond(c, err)
		return
	}
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

func (h *Handler) Me(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, s.User)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apperr.Respond(c, apperr.Validation("JSON invalide"))
		return
	}
	u, err := h.auth.UpdateProfile(c.Request.Context(), middleware.UserID(c), patch)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
