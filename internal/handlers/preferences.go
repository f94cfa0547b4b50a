package handlers

import (
	"net/http"

	"polo_storefront/internal/app"
	"polo_storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// GET /api/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.storefront(c).Preferences.Get())
}

// PUT /api/preferences
// Seuls les champs présents sont modifiés.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var input struct {
		DarkMode *bool            `json:"darkMode"`
		ViewMode *models.ViewMode `json:"viewMode"`
		BigText  *bool            `json:"bigText"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	prefs := h.storefront(c).Preferences
	if input.ViewMode != nil {
		if err := prefs.SetViewMode(*input.ViewMode); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if input.DarkMode != nil {
		prefs.SetDarkMode(*input.DarkMode)
	}
	if input.BigText != nil {
		prefs.SetBigText(*input.BigText)
	}
	c.JSON(http.StatusOK, prefs.Get())
}

// POST /api/navigate/:page
func (h *Handler) Navigate(c *gin.Context) {
	page, err := h.storefront(c).Navigate(app.Page(c.Param("page")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// GET /api/toast
func (h *Handler) GetToast(c *gin.Context) {
	msg, visible := h.storefront(c).Toast.Current()
	c.JSON(http.StatusOK, gin.H{"message": msg, "visible": visible})
}

// DELETE /api/toast
func (h *Handler) DismissToast(c *gin.Context) {
	h.storefront(c).Toast.Dismiss()
	c.Status(http.StatusNoContent)
}
