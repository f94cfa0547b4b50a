package handlers

import (
	"net/http"
	"strconv"

	"polo_storefront/internal/identity"
	"polo_storefront/internal/orders"

	"github.com/gin-gonic/gin"
)

// GET /api/orders
// Historique du client connecté, du plus récent au plus ancien.
func (h *Handler) ListOrders(c *gin.Context) {
	s := h.storefront(c)
	user, ok := s.Identity.Current()
	if !ok {
		respondError(c, identity.ErrNotAuthenticated)
		return
	}
	list := s.Orders.ForUser(user.Email)
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// GET /api/orders/:id/whatsapp.png?size=
func (h *Handler) OrderWhatsAppQR(c *gin.Context) {
	order, found := h.storefront(c).Orders.ByID(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))
	if size > 1024 {
		size = 1024
	}

	png, err := orders.WhatsAppQR(orders.WhatsAppLink(h.whatsAppPhone, order), size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
