package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
)

type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "delivery"
	DeliveryPickup DeliveryMethod = "pickup"
)

type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
)

// Valid vérifie que le moyen de paiement est connu
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentTransfer, PaymentCash, PaymentCard:
		return true
	}
	return false
}

// Label renvoie le libellé affiché au client
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentTransfer:
		return "Transferencia"
	case PaymentCash:
		return "Efectivo"
	case PaymentCard:
		return "Tarjeta"
	}
	return string(p)
}

// CustomerData est l'instantané du formulaire de commande.
type CustomerData struct {
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	ZipCode        string         `json:"zipCode"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	Notes          string         `json:"notes"`
}

// Order est figée à sa création : Items et CustomerData sont des copies.
type Order struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	Items        []CartItem      `json:"items"`
	CustomerData CustomerData    `json:"customerData"`
}
