package cart

import (
	"errors"
	"fmt"
	"sync"

	"polo_storefront/internal/models"
	"polo_storefront/internal/storage"

	"github.com/shopspring/decimal"
)

var (
	ErrNoStock         = errors.New("producto sin stock")
	ErrInvalidQuantity = errors.New("cantidad inválida")
)

// Manager tient le panier actif. Chaque mutation réécrit la liste complète.
type Manager struct {
	mu    sync.Mutex
	store *storage.Adapter
	items []models.CartItem
}

// NewManager recharge le panier persisté (vide si absent ou corrompu)
func NewManager(store *storage.Adapter) *Manager {
	m := &Manager{store: store}
	var items []models.CartItem
	if store.Load(storage.KeyCart, &items) {
		m.items = sanitize(items)
	}
	return m
}

// sanitize écarte les entrées qui violent l'invariant 1 <= quantité <= stock
func sanitize(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Stock <= 0 || item.Quantity <= 0 {
			continue
		}
		if item.Quantity > item.Stock {
			item.Quantity = item.Stock
		}
		out = append(out, item)
	}
	return out
}

func (m *Manager) persist() {
	m.store.Save(storage.KeyCart, m.items)
}

func (m *Manager) indexOf(id int) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddToCart ajoute quantity unités du produit, plafonnées au stock sans erreur.
// Un produit sans stock est refusé et le panier reste inchangé.
func (m *Manager) AddToCart(product models.Product, quantity int) (string, error) {
	if !product.InStock() {
		return "", ErrNoStock
	}
	if quantity <= 0 {
		return "", ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	added := 0
	if i := m.indexOf(product.ID); i >= 0 {
		// Rafraîchit la fiche produit (le stock a pu changer)
		previous := m.items[i].Quantity
		m.items[i].Product = product
		m.items[i].Quantity = min(previous+quantity, product.Stock)
		added = max(m.items[i].Quantity-previous, 0)
	} else {
		added = min(quantity, product.Stock)
		m.items = append(m.items, models.CartItem{
			Product:  product,
			Quantity: added,
		})
	}
	m.persist()

	// Le message annonce les unités réellement ajoutées après plafonnement
	switch added {
	case 0:
		return fmt.Sprintf("%s ya tiene el máximo disponible en el carrito", product.Name), nil
	case 1:
		return fmt.Sprintf("¡%s agregado al carrito!", product.Name), nil
	}
	return fmt.Sprintf("¡%d x %s agregado al carrito!", added, product.Name), nil
}

// UpdateQuantity fixe la quantité d'une entrée existante, toujours bornée à
// [1, stock]. Une quantité <= 0 retire l'article. Retourne false si absent.
func (m *Manager) UpdateQuantity(id, quantity int) (models.CartItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.CartItem{}, false
	}

	if quantity <= 0 {
		removed := m.items[i]
		m.items = append(m.items[:i], m.items[i+1:]...)
		m.persist()
		removed.Quantity = 0
		return removed, true
	}

	m.items[i].Quantity = min(quantity, m.items[i].Stock)
	m.persist()
	return m.items[i], true
}

// RemoveItem supprime l'entrée ; sans effet si elle n'existe pas
func (m *Manager) RemoveItem(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	m.persist()
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = []models.CartItem{}
	m.persist()
}

// Reconcile réaligne le panier sur le catalogue courant : stock rafraîchi,
// quantités replafonnées, articles épuisés ou disparus retirés.
func (m *Manager) Reconcile(lookup func(id int) (models.Product, bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := false
	kept := make([]models.CartItem, 0, len(m.items))
	for _, item := range m.items {
		product, ok := lookup(item.ID)
		if !ok || !product.InStock() {
			changed = true
			continue
		}
		if product != item.Product {
			item.Product = product
			changed = true
		}
		if item.Quantity > product.Stock {
			item.Quantity = product.Stock
			changed = true
		}
		kept = append(kept, item)
	}

	if changed {
		m.items = kept
		m.persist()
	}
}

// Items renvoie une copie, dans l'ordre d'insertion
func (m *Manager) Items() []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.CloneItems(m.items)
}

func (m *Manager) Quantity(id int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i].Quantity
	}
	return 0
}

func (m *Manager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items) == 0
}

func (m *Manager) TotalItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.ItemsCount(m.items)
}

func (m *Manager) TotalPrice() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.ItemsTotal(m.items)
}
