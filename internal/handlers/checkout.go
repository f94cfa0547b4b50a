package handlers

import (
	"net/http"

	"polo_storefront/internal/app"
	"polo_storefront/internal/models"
	"polo_storefront/internal/orders"

	"github.com/gin-gonic/gin"
)

func checkoutView(c *orders.Checkout) gin.H {
	return gin.H{
		"step":       c.Step().String(),
		"stepNumber": int(c.Step()),
		"data":       c.Data(),
	}
}

// currentCheckout écrit la réponse 409 quand aucune commande n'est en cours
func (h *Handler) currentCheckout(c *gin.Context) (*app.Storefront, *orders.Checkout, bool) {
	s := h.storefront(c)
	checkout, err := s.Checkout()
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	return s, checkout, true
}

// POST /api/checkout/start
// Panier vide => accueil ; non connecté => formulaire de connexion.
func (h *Handler) StartCheckout(c *gin.Context) {
	s := h.storefront(c)
	page, err := s.ProceedToCheckout()
	if err != nil {
		respondError(c, err)
		return
	}
	if page != app.PageCheckout {
		c.JSON(http.StatusOK, gin.H{"page": page})
		return
	}

	checkout, err := s.Checkout()
	if err != nil {
		respondError(c, err)
		return
	}
	view := checkoutView(checkout)
	view["page"] = page
	c.JSON(http.StatusOK, view)
}

// GET /api/checkout
func (h *Handler) GetCheckout(c *gin.Context) {
	_, checkout, ok := h.currentCheckout(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, checkoutView(checkout))
}

// PUT /api/checkout
// Les champs absents du corps gardent leur valeur.
func (h *Handler) UpdateCheckout(c *gin.Context) {
	_, checkout, ok := h.currentCheckout(c)
	if !ok {
		return
	}

	data := checkout.Data()
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	if err := checkout.Update(func(d *models.CustomerData) { *d = data }); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkoutView(checkout))
}

// POST /api/checkout/next
func (h *Handler) NextStep(c *gin.Context) {
	_, checkout, ok := h.currentCheckout(c)
	if !ok {
		return
	}
	if err := checkout.Next(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkoutView(checkout))
}

// POST /api/checkout/back
func (h *Handler) PreviousStep(c *gin.Context) {
	_, checkout, ok := h.currentCheckout(c)
	if !ok {
		return
	}
	if err := checkout.Back(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkoutView(checkout))
}

// POST /api/checkout/submit
// Renvoie la commande et le lien WhatsApp vers la boutique.
func (h *Handler) SubmitCheckout(c *gin.Context) {
	s := h.storefront(c)
	order, err := s.CompleteOrder()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":        order,
		"total":        order.Total.StringFixed(2),
		"whatsappLink": orders.WhatsAppLink(h.whatsAppPhone, order),
		"page":         s.Page(),
	})
}
