package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"polo_storefront/internal/app"
	"polo_storefront/internal/cart"
	"polo_storefront/internal/identity"
	"polo_storefront/internal/orders"
	"polo_storefront/internal/validation"

	"github.com/gin-gonic/gin"
)

// Handler relie les routes HTTP à la boutique de chaque appareil
type Handler struct {
	registry      *app.Registry
	secret        []byte
	whatsAppPhone string
}

func New(registry *app.Registry, secret []byte, whatsAppPhone string) *Handler {
	return &Handler{registry: registry, secret: secret, whatsAppPhone: whatsAppPhone}
}

// storefront renvoie la boutique de l'appareil authentifié par DeviceRequired
func (h *Handler) storefront(c *gin.Context) *app.Storefront {
	return h.registry.Get(c.GetString("device_id"))
}

// productID lit le paramètre :productId ; écrit la réponse 400 si invalide
func productID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID producto inválido"})
		return 0, false
	}
	return id, true
}

// respondError traduit les erreurs métier en statut HTTP
func respondError(c *gin.Context, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "fields": fields})
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrUnknownProduct),
		errors.Is(err, identity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrAlreadyRegistered),
		errors.Is(err, cart.ErrNoStock),
		errors.Is(err, app.ErrNoCheckout),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrCheckoutSubmitted),
		errors.Is(err, orders.ErrNotPaymentStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Erreur interne: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
	}
}
