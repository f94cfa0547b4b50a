package handlers

import (
	"net/http"

	"polo_storefront/internal/app"
	"polo_storefront/internal/utils"

	"github.com/gin-gonic/gin"
)

func cartView(s *app.Storefront) gin.H {
	return gin.H{
		"items":      s.Cart.Items(),
		"totalItems": s.Cart.TotalItemCount(),
		"total":      utils.FormatPrice(s.Cart.TotalPrice()),
	}
}

// GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(h.storefront(c)))
}

// POST /api/cart/add
func (h *Handler) AddToCart(c *gin.Context) {
	var input struct {
		ProductID int `json:"productId" binding:"required"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	s := h.storefront(c)
	msg, err := s.AddToCart(input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	view := cartView(s)
	view["message"] = msg
	c.JSON(http.StatusOK, view)
}

// PUT /api/cart/:productId
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := productID(c, "productId")
	if !ok {
		return
	}
	// La suppression passe par DELETE : une quantité absente ou < 1 est refusée
	var input struct {
		Quantity *int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cantidad inválida"})
		return
	}

	s := h.storefront(c)
	if _, found := s.Cart.UpdateQuantity(id, *input.Quantity); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no está en el carrito"})
		return
	}
	c.JSON(http.StatusOK, cartView(s))
}

// DELETE /api/cart/:productId
func (h *Handler) RemoveCartItem(c *gin.Context) {
	id, ok := productID(c, "productId")
	if !ok {
		return
	}
	s := h.storefront(c)
	s.Cart.RemoveItem(id)
	c.JSON(http.StatusOK, cartView(s))
}

// DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	s := h.storefront(c)
	s.Cart.Clear()
	c.JSON(http.StatusOK, cartView(s))
}
