package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DeviceTokenTTL : un appareil garde son panier un an sans se réidentifier
const DeviceTokenTTL = 365 * 24 * time.Hour

var ErrMissingDevice = errors.New("device_id manquant")

// IssueDeviceToken signe un jeton HMAC pour l'appareil ; un id vide en génère un
func IssueDeviceToken(secret []byte, deviceID string) (string, string, error) {
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"device_id": deviceID,
		"iat":       now.Unix(),
		"exp":       now.Add(DeviceTokenTTL).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return deviceID, signed, nil
}

// ParseDeviceToken vérifie la signature et l'expiration, puis renvoie l'appareil
func ParseDeviceToken(secret []byte, tokenString string) (string, error) {
	return parseDevice(secret, tokenString, jwt.WithExpirationRequired())
}

// ParseRenewableToken accepte un jeton expiré mais correctement signé :
// seul le détenteur d'un jeton émis pour l'appareil peut le renouveler.
func ParseRenewableToken(secret []byte, tokenString string) (string, error) {
	return parseDevice(secret, tokenString, jwt.WithoutClaimsValidation())
}

func parseDevice(secret []byte, tokenString string, opts ...jwt.ParserOption) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return secret, nil
	}, opts...)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	deviceID, ok := claims["device_id"].(string)
	if !ok || deviceID == "" {
		return "", ErrMissingDevice
	}
	return deviceID, nil
}

// BearerToken extrait le jeton du header Authorization ; vide si absent ou mal formé
func BearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// DeviceRequired exige un jeton d'appareil et place device_id dans le contexte Gin
func DeviceRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Printf("❌ Format Authorization invalide: %v parties", len(parts))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		deviceID, err := ParseDeviceToken(secret, parts[1])
		if err != nil {
			log.Printf("❌ Erreur parsing JWT: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		c.Set("device_id", deviceID)
		c.Next()
	}
}
