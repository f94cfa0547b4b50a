package models

// Product est une fiche du catalogue, fournie au démarrage et jamais modifiée ensuite.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Stock       int     `json:"stock"`
}

// InStock indique si le produit peut être ajouté au panier
func (p Product) InStock() bool {
	return p.Stock > 0
}
