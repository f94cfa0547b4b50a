package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	s := h.storefront(c)
	c.JSON(http.StatusOK, gin.H{"products": s.Favorites.Products(s.Catalog.ByID)})
}

// POST /api/favorites/:productId/toggle
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := productID(c, "productId")
	if !ok {
		return
	}
	added, err := h.storefront(c).ToggleFavorite(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productId": id, "favorite": added})
}
