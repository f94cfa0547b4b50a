package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"polo_storefront/internal/models"
	"polo_storefront/internal/utils"
)

// Ordres de tri proposés sur la page produits
const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByRating    = "rating"
)

// Provider expose le catalogue statique, en lecture seule
type Provider struct {
	products []models.Product
	byID     map[int]int
}

func New(products []models.Product) (*Provider, error) {
	p := &Provider{
		products: make([]models.Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(p.products, products)

	for i, product := range p.products {
		if _, dup := p.byID[product.ID]; dup {
			return nil, fmt.Errorf("produit en double dans le catalogue: id %d", product.ID)
		}
		if product.Stock < 0 {
			return nil, fmt.Errorf("stock négatif pour le produit %d", product.ID)
		}
		p.byID[product.ID] = i
	}
	return p, nil
}

// LoadJSON lit une liste de produits au format JSON
func LoadJSON(r io.Reader) (*Provider, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("décodage catalogue: %w", err)
	}
	return New(products)
}

// LoadFile charge le catalogue depuis un fichier, ou le catalogue par défaut si path est vide
func LoadFile(path string) (*Provider, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadJSON(f)
}

// All renvoie une copie, dans l'ordre du catalogue
func (p *Provider) All() []models.Product {
	out := make([]models.Product, len(p.products))
	copy(out, p.products)
	return out
}

func (p *Provider) ByID(id int) (models.Product, bool) {
	i, ok := p.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return p.products[i], true
}

// Categories liste les catégories dans leur ordre d'apparition
func (p *Provider) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, product := range p.products {
		if !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}
	return categories
}

// Filter garde les produits dont le nom contient term (sans casse)
// et dont la catégorie vaut category (vide = toutes)
func (p *Provider) Filter(term, category string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []models.Product{}
	for _, product := range p.products {
		if term != "" && !strings.Contains(strings.ToLower(product.Name), term) {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		out = append(out, product)
	}
	return out
}

// Featured renvoie les n premiers produits filtrés (vitrine de l'accueil)
func (p *Provider) Featured(term, category string, n int) []models.Product {
	products := p.Filter(term, category)
	if n >= 0 && len(products) > n {
		products = products[:n]
	}
	return products
}

// Sort trie en place une liste de produits ; un ordre inconnu trie par nom
func Sort(products []models.Product, by string) {
	switch by {
	case SortByPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return utils.ParsePrice(products[i].Price).LessThan(utils.ParsePrice(products[j].Price))
		})
	case SortByPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return utils.ParsePrice(products[i].Price).GreaterThan(utils.ParsePrice(products[j].Price))
		})
	case SortByRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	}
}
