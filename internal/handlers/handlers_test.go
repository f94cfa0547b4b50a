package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"polo_storefront/internal/app"
	"polo_storefront/internal/database"
	"polo_storefront/internal/handlers"
	"polo_storefront/internal/middleware"
	"polo_storefront/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test_secret")

type client struct {
	t        *testing.T
	router   *gin.Engine
	token    string
	deviceID string
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := app.NewRegistry(database.NewMemoryStore(), app.Options{
		Prefix:        "inversionesPolo",
		AuthDelay:     time.Millisecond,
		ToastDuration: time.Hour,
	})
	t.Cleanup(registry.Close)

	r := gin.New()
	routes.RegisterRoutes(r, handlers.New(registry, secret, "51987654321"),
		middleware.DeviceRequired(secret),
		middleware.LoginRateLimit(middleware.NewMemoryAttempts(), 5, time.Minute))

	c := &client{t: t, router: r}
	w := c.do(http.MethodPost, "/api/device", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		DeviceID string `json:"deviceId"`
		Token    string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.DeviceID)
	c.token = body.Token
	c.deviceID = body.DeviceID
	return c
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func register(c *client) {
	w := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "ana@polo.pe", "password": "secreto1", "confirmPassword": "secreto1",
		"firstName": "Ana", "lastName": "Quispe", "phone": "987654321",
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
}

func TestDeviceTokenRequired(t *testing.T) {
	c := newClient(t)
	c.token = ""
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/cart", nil).Code)
}

func TestDeviceRenewal(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/cart/add", map[string]int{"productId": 1})

	renew := func(token string, body any) string {
		c.token = token
		w := c.do(http.MethodPost, "/api/device", body)
		require.Equal(t, http.StatusCreated, w.Code)
		return decode(t, w)["deviceId"].(string)
	}

	// Choisir l'identifiant d'un autre appareil ne donne pas accès à son panier
	assert.NotEqual(t, c.deviceID, renew("", map[string]string{"deviceId": c.deviceID}))

	_, current, err := middleware.IssueDeviceToken(secret, c.deviceID)
	require.NoError(t, err)
	assert.Equal(t, c.deviceID, renew(current, nil))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"device_id": c.deviceID,
		"exp":       time.Now().Add(-time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	assert.Equal(t, c.deviceID, renew(expired, nil), "un jeton expiré reste renouvelable")

	_, forged, err := middleware.IssueDeviceToken([]byte("autre_secret"), c.deviceID)
	require.NoError(t, err)
	assert.NotEqual(t, c.deviceID, renew(forged, nil))

	c.token = current
	w := c.do(http.MethodGet, "/api/cart", nil)
	assert.EqualValues(t, 1, decode(t, w)["totalItems"])
}

func TestCatalogRoutes(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodGet, "/api/products?category=Tecnolog%C3%ADa&sort=price-low&q=a&commit=true&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["count"])
	first := body["products"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 8, first["id"])

	w = c.do(http.MethodGet, "/api/search/history", nil)
	assert.Equal(t, []any{"a"}, decode(t, w)["history"])
	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/api/search/history", nil).Code)

	w = c.do(http.MethodGet, "/api/products/featured", nil)
	assert.EqualValues(t, 8, decode(t, w)["count"])

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/products/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/products/abc", nil).Code)

	w = c.do(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, []any{"Electrodomésticos", "Tecnología"}, decode(t, w)["categories"])
}

func TestCartRoutes(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/api/cart/add", map[string]int{"productId": 7, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "¡2 x Audífonos Bluetooth Inalámbricos agregado al carrito!", body["message"])
	assert.Equal(t, "S/ 198.00", body["total"])

	w = c.do(http.MethodGet, "/api/toast", nil)
	assert.Equal(t, true, decode(t, w)["visible"])

	// Borné au stock (3)
	w = c.do(http.MethodPut, "/api/cart/7", map[string]int{"quantity": 10})
	assert.EqualValues(t, 3, decode(t, w)["totalItems"])

	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/cart/add", map[string]int{"productId": 4}).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/cart/add", map[string]int{"productId": 999}).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPut, "/api/cart/1", map[string]int{"quantity": 1}).Code)

	// Une quantité absente ou nulle ne retire pas l'article
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/cart/7", map[string]int{}).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/cart/7", map[string]int{"quantity": 0}).Code)
	w = c.do(http.MethodGet, "/api/cart", nil)
	assert.EqualValues(t, 3, decode(t, w)["totalItems"])

	w = c.do(http.MethodDelete, "/api/cart/7", nil)
	assert.EqualValues(t, 0, decode(t, w)["totalItems"])
}

func TestFavoritesRoutes(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/api/favorites/3/toggle", nil)
	assert.Equal(t, true, decode(t, w)["favorite"])

	w = c.do(http.MethodGet, "/api/favorites", nil)
	assert.Len(t, decode(t, w)["products"], 1)

	w = c.do(http.MethodGet, "/api/products/3", nil)
	assert.Equal(t, true, decode(t, w)["favorite"])
}

func TestAuthRoutes(t *testing.T) {
	c := newClient(t)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/auth/me", nil).Code)

	w := c.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "password")

	register(c)
	w = c.do(http.MethodPut, "/api/auth/me", map[string]string{"firstName": "Ana María", "lastName": "Quispe", "phone": "911"})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Ana María", user["firstName"])
	assert.Equal(t, "ana@polo.pe", user["email"])

	c.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "ana@polo.pe", "password": "mauvais1"}).Code)
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "ana@polo.pe", "password": "secreto1", "confirmPassword": "secreto1",
		"firstName": "Ana", "lastName": "Quispe", "phone": "987654321",
	}).Code)

	w = c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ana@polo.pe", "password": "secreto1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home", decode(t, w)["page"], "panier vide : pas de commande")
}

func TestCheckoutFlow(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/api/checkout/start", nil)
	assert.Equal(t, "home", decode(t, w)["page"])

	c.do(http.MethodPost, "/api/cart/add", map[string]int{"productId": 2, "quantity": 1})
	w = c.do(http.MethodPost, "/api/checkout/start", nil)
	assert.Equal(t, "auth", decode(t, w)["page"])

	register(c)
	w = c.do(http.MethodGet, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "identity", decode(t, w)["step"])

	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/checkout/next", nil).Code)

	// Livraison à domicile sans adresse
	w = c.do(http.MethodPost, "/api/checkout/next", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "address")

	w = c.do(http.MethodPut, "/api/checkout", map[string]string{"deliveryMethod": "pickup", "paymentMethod": "cash"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Ana", data["firstName"], "les champs absents sont conservés")

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/checkout/next", nil).Code)
	w = c.do(http.MethodPost, "/api/checkout/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "160.00", body["total"])
	assert.Contains(t, body["whatsappLink"], "https://wa.me/51987654321?text=")
	orderID := body["order"].(map[string]any)["id"].(string)

	w = c.do(http.MethodGet, "/api/cart", nil)
	assert.EqualValues(t, 0, decode(t, w)["totalItems"])
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/checkout/submit", nil).Code)

	w = c.do(http.MethodGet, "/api/orders", nil)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = c.do(http.MethodGet, "/api/orders/"+orderID+"/whatsapp.png?size=128", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG"), w.Body.Bytes()[:4])

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/orders/inconnu/whatsapp.png", nil).Code)
}

func TestPreferencesAndNavigation(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPut, "/api/preferences", map[string]any{"darkMode": true, "viewMode": "list"})
	require.Equal(t, http.StatusOK, w.Code)
	prefs := decode(t, w)
	assert.Equal(t, true, prefs["darkMode"])
	assert.Equal(t, "list", prefs["viewMode"])
	assert.Equal(t, false, prefs["bigText"])

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/preferences", map[string]any{"viewMode": "mosaic"}).Code)

	w = c.do(http.MethodPost, "/api/navigate/profile", nil)
	assert.Equal(t, "auth", decode(t, w)["page"])
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/navigate/admin", nil).Code)

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/api/toast", nil).Code)
}
