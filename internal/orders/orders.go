package orders

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"polo_storefront/internal/models"
	"polo_storefront/internal/storage"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("el carrito está vacío")

// Manager ajoute les commandes à une liste persistée, jamais réécrite en place
type Manager struct {
	mu    sync.Mutex
	store *storage.Adapter
	now   func() time.Time
	newID func() string
}

func NewManager(store *storage.Adapter) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// load relit la liste ; une panne du backend est remontée, jamais remplacée par []
func (m *Manager) load() ([]models.Order, error) {
	orders := []models.Order{}
	if err := m.store.Fetch(storage.KeyOrders, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Submit fige le panier et le formulaire dans une nouvelle commande "pending".
// Le panier n'est pas vidé et le stock n'est pas touché.
func (m *Manager) Submit(items []models.CartItem, customer models.CustomerData) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	snapshot := models.CloneItems(items)
	order := models.Order{
		ID:           m.newID(),
		Date:         m.now().UTC(),
		Total:        models.ItemsTotal(snapshot),
		Status:       models.OrderPending,
		Items:        snapshot,
		CustomerData: customer,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.load()
	if err != nil {
		log.Printf("❌ Commande non enregistrée, lecture impossible: %v", err)
		return models.Order{}, err
	}
	orders := append(existing, order)
	if err := m.store.Write(storage.KeyOrders, orders); err != nil {
		return models.Order{}, err
	}

	log.Printf("🧾 Commande %s enregistrée (%d articles)", order.ID, len(order.Items))
	return cloneOrder(order), nil
}

func cloneOrder(o models.Order) models.Order {
	o.Items = models.CloneItems(o.Items)
	return o
}

// All renvoie toutes les commandes, dans l'ordre de création.
// Une lecture impossible donne une liste vide, journalisée.
func (m *Manager) All() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders, err := m.load()
	if err != nil {
		log.Printf("⚠️ Lecture des commandes impossible: %v", err)
		return []models.Order{}
	}
	return orders
}

// ForUser liste les commandes passées avec cet email, la plus récente d'abord
func (m *Manager) ForUser(email string) []models.Order {
	mine := []models.Order{}
	for _, o := range m.All() {
		if o.CustomerData.Email == email {
			mine = append(mine, o)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Date.After(mine[j].Date)
	})
	return mine
}

func (m *Manager) ByID(id string) (models.Order, bool) {
	for _, o := range m.All() {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}
