package handlers

import (
	"log"
	"net/http"

	"polo_storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/device
// Sans jeton : nouvel appareil. Avec le jeton courant (même expiré) dans
// Authorization : jeton renouvelé pour le même appareil.
func (h *Handler) RegisterDevice(c *gin.Context) {
	deviceID := ""
	if token := middleware.BearerToken(c); token != "" {
		id, err := middleware.ParseRenewableToken(h.secret, token)
		if err != nil {
			log.Printf("⚠️ Jeton de renouvellement refusé, nouvel appareil: %v", err)
		} else {
			deviceID = id
		}
	}

	deviceID, token, err := middleware.IssueDeviceToken(h.secret, deviceID)
	if err != nil {
		log.Printf("❌ Erreur signature jeton: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"deviceId": deviceID, "token": token})
}
