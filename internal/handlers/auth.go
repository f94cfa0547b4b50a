package handlers

import (
	"net/http"

	"polo_storefront/internal/identity"
	"polo_storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// POST /api/auth/register
// La réponse arrive après la latence simulée de la boutique.
func (h *Handler) Register(c *gin.Context) {
	var form identity.Registration
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	s := h.storefront(c)
	user, err := s.Register(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "page": s.Page()})
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	s := h.storefront(c)
	user, err := s.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "page": s.Page()})
}

// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	s := h.storefront(c)
	s.Logout()
	c.JSON(http.StatusOK, gin.H{"page": s.Page()})
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	user, ok := h.storefront(c).Identity.Current()
	if !ok {
		respondError(c, identity.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// PUT /api/auth/me
// L'email n'est pas modifiable : il identifie le compte.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	user, err := h.storefront(c).Identity.UpdateProfile(profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
