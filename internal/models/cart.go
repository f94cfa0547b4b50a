package models

import (
	"polo_storefront/internal/utils"

	"github.com/shopspring/decimal"
)

// CartItem reprend tous les champs du produit, plus la quantité choisie.
// Invariant : 1 <= Quantity <= Stock.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal = prix unitaire × quantité (prix illisible => 0)
func (i CartItem) Subtotal() decimal.Decimal {
	return utils.ParsePrice(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal calcule le total d'une liste d'articles.
func ItemsTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemsCount additionne les quantités
func ItemsCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CloneItems copie la liste pour qu'aucun appelant ne partage le tableau interne
func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
