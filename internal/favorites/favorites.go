package favorites

import (
	"sync"

	"polo_storefront/internal/models"
	"polo_storefront/internal/storage"
)

// Manager garde l'ensemble des produits favoris, dans l'ordre d'ajout
type Manager struct {
	mu    sync.Mutex
	store *storage.Adapter
	ids   []int
}

func NewManager(store *storage.Adapter) *Manager {
	m := &Manager{store: store, ids: []int{}}
	var ids []int
	if store.Load(storage.KeyFavorites, &ids) {
		// Dédoublonne au cas où la valeur stockée aurait été éditée à la main
		seen := make(map[int]bool, len(ids))
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				m.ids = append(m.ids, id)
			}
		}
	}
	return m
}

// Toggle ajoute l'id s'il est absent, le retire sinon. Retourne true si ajouté.
func (m *Manager) Toggle(productID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	added := true
	for i, id := range m.ids {
		if id == productID {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			added = false
			break
		}
	}
	if added {
		m.ids = append(m.ids, productID)
	}

	m.store.Save(storage.KeyFavorites, m.ids)
	return added
}

func (m *Manager) Contains(productID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.ids {
		if id == productID {
			return true
		}
	}
	return false
}

func (m *Manager) IDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.ids))
	copy(out, m.ids)
	return out
}

// Products résout les favoris dans le catalogue ; les ids inconnus sont ignorés
func (m *Manager) Products(lookup func(id int) (models.Product, bool)) []models.Product {
	products := []models.Product{}
	for _, id := range m.IDs() {
		if p, ok := lookup(id); ok {
			products = append(products, p)
		}
	}
	return products
}
