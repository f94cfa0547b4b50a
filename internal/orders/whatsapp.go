package orders

import (
	"fmt"
	"net/url"
	"strings"

	"polo_storefront/internal/models"
	"polo_storefront/internal/utils"

	qrcode "github.com/skip2/go-qrcode"
)

// StoreAddress est l'adresse de retrait en magasin
const StoreAddress = "Av. Principal, Centro Comercial Plaza, Local 25"

// WhatsAppMessage compose le récapitulatif envoyé à la boutique
func WhatsAppMessage(order models.Order) string {
	d := order.CustomerData

	var delivery string
	if d.DeliveryMethod == models.DeliveryPickup {
		delivery = "🏪 *RECOJO EN TIENDA*\n" + StoreAddress
	} else {
		delivery = fmt.Sprintf("📍 *Dirección de Entrega:*\n%s\n%s, %s %s", d.Address, d.City, d.State, d.ZipCode)
	}

	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("• %s x%d - %s", item.Name, item.Quantity, item.Price))
	}

	notes := d.Notes
	if notes == "" {
		notes = "Ninguna"
	}

	var b strings.Builder
	b.WriteString("🛒 *NUEVO PEDIDO - INVERSIONES POLO*\n\n")
	b.WriteString("👤 *Datos del Cliente:*\n")
	fmt.Fprintf(&b, "Nombre: %s %s\n", d.FirstName, d.LastName)
	fmt.Fprintf(&b, "Email: %s\n", d.Email)
	fmt.Fprintf(&b, "Teléfono: %s\n\n", d.Phone)
	b.WriteString(delivery + "\n\n")
	b.WriteString("🛍️ *Productos:*\n")
	b.WriteString(strings.Join(lines, "\n") + "\n\n")
	fmt.Fprintf(&b, "💰 *Total: %s*\n\n", utils.FormatPrice(order.Total))
	fmt.Fprintf(&b, "💳 *Método de Pago:* %s\n\n", d.PaymentMethod.Label())
	fmt.Fprintf(&b, "📝 *Notas:* %s", notes)
	return b.String()
}

// WhatsAppLink construit le lien wa.me pré-rempli
func WhatsAppLink(phone string, order models.Order) string {
	// Espaces en %20 comme encodeURIComponent ; les "+" littéraux sont déjà en %2B
	text := strings.ReplaceAll(url.QueryEscape(WhatsAppMessage(order)), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + text
}

// WhatsAppQR rend le lien sous forme de QR code PNG
func WhatsAppQR(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(link, qrcode.Low, size)
}
