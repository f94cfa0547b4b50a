package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GET /api/products?q=&category=&sort=&commit=true&limit=
func (h *Handler) ListProducts(c *gin.Context) {
	s := h.storefront(c)
	commit, _ := strconv.ParseBool(c.Query("commit"))

	products := s.SearchProducts(c.Query("q"), c.Query("category"), c.Query("sort"), commit)
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit >= 0 && len(products) > limit {
		products = products[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GET /api/products/featured?q=&category=&limit=
// Vitrine de l'accueil : 8 produits par défaut.
func (h *Handler) FeaturedProducts(c *gin.Context) {
	limit := 8
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n >= 0 {
		limit = n
	}
	products := h.storefront(c).Catalog.Featured(c.Query("q"), c.Query("category"), limit)
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := productID(c, "id")
	if !ok {
		return
	}
	s := h.storefront(c)
	product, found := s.Catalog.ByID(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":  product,
		"favorite": s.Favorites.Contains(id),
		"inCart":   s.Cart.Quantity(id),
	})
}

// GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.storefront(c).Catalog.Categories()})
}

// GET /api/search/history
func (h *Handler) SearchHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.storefront(c).Search.Entries()})
}

// DELETE /api/search/history
func (h *Handler) ClearSearchHistory(c *gin.Context) {
	h.storefront(c).Search.Clear()
	c.Status(http.StatusNoContent)
}
