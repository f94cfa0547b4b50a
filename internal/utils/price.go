package utils

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CurrencySymbol est le préfixe affiché devant les prix (soles péruviens)
const CurrencySymbol = "S/"

// ParsePrice convertit un prix affiché ("S/ 1,299.90") en décimal.
// Ne panique jamais : un prix illisible vaut zéro.
func ParsePrice(raw string) decimal.Decimal {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	for _, prefix := range []string{"S/.", "s/.", "S/", "s/"} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	// Tout autre symbole monétaire ("$", "PEN", ...) et les espaces de tête
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '+' && r != '.'
	})
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// FormatPrice produit le format d'affichage "S/ 110.00"
func FormatPrice(amount decimal.Decimal) string {
	return CurrencySymbol + " " + amount.StringFixed(2)
}
