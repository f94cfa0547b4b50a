package cart

import (
	"context"
	"testing"

	"polo_storefront/internal/database"
	"polo_storefront/internal/models"
	"polo_storefront/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *storage.Adapter) {
	t.Helper()
	store := storage.New(database.NewMemoryStore(), "test")
	return NewManager(store), store
}

func product(id, stock int, price string) models.Product {
	return models.Product{ID: id, Name: "Producto", Price: price, Stock: stock, Category: "Tecnología"}
}

func TestAddToCartClampsToStock(t *testing.T) {
	m, _ := newTestManager(t)
	p := product(1, 5, "S/ 10.00")

	msg, err := m.AddToCart(p, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
	assert.Equal(t, 3, m.Quantity(1))

	_, err = m.AddToCart(p, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Quantity(1), "min(3+4, 5)")

	// Une nouvelle entrée est aussi plafonnée
	_, err = m.AddToCart(product(2, 2, "S/ 1.00"), 9)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Quantity(2))
}

func TestAddToCartMessageReportsUnitsAdded(t *testing.T) {
	m, _ := newTestManager(t)
	p := product(1, 5, "S/ 10.00")

	msg, err := m.AddToCart(p, 3)
	require.NoError(t, err)
	assert.Equal(t, "¡3 x Producto agregado al carrito!", msg)

	msg, err = m.AddToCart(p, 4)
	require.NoError(t, err)
	assert.Equal(t, "¡2 x Producto agregado al carrito!", msg, "plafonné à 5")

	msg, err = m.AddToCart(p, 1)
	require.NoError(t, err)
	assert.Equal(t, "Producto ya tiene el máximo disponible en el carrito", msg)

	msg, err = m.AddToCart(product(2, 1, "S/ 1.00"), 3)
	require.NoError(t, err)
	assert.Equal(t, "¡Producto agregado al carrito!", msg)
}

func TestAddToCartRejectsOutOfStock(t *testing.T) {
	m, store := newTestManager(t)

	_, err := m.AddToCart(product(1, 0, "S/ 10.00"), 1)
	assert.ErrorIs(t, err, ErrNoStock)
	assert.True(t, m.IsEmpty())

	// Rien n'a été écrit
	var persisted []models.CartItem
	assert.False(t, store.Load(storage.KeyCart, &persisted))
}

func TestAddToCartRejectsInvalidQuantity(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.AddToCart(product(1, 3, "S/ 10.00"), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, m.IsEmpty())
}

func TestQuantityNeverExceedsStock(t *testing.T) {
	m, _ := newTestManager(t)
	stocks := map[int]int{1: 1, 2: 4, 3: 7}

	for round := 1; round <= 6; round++ {
		for id, stock := range stocks {
			_, err := m.AddToCart(product(id, stock, "S/ 2.00"), round)
			require.NoError(t, err)
		}
	}

	for _, item := range m.Items() {
		assert.LessOrEqual(t, item.Quantity, stocks[item.ID])
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestUpdateQuantityClamps(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.AddToCart(product(1, 5, "S/ 10.00"), 1)
	require.NoError(t, err)

	item, ok := m.UpdateQuantity(1, 50)
	require.True(t, ok)
	assert.Equal(t, 5, item.Quantity)

	item, ok = m.UpdateQuantity(1, 2)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)

	_, ok = m.UpdateQuantity(99, 2)
	assert.False(t, ok)

	_, ok = m.UpdateQuantity(1, 0)
	assert.True(t, ok)
	assert.True(t, m.IsEmpty())
}

func TestRemoveAndClear(t *testing.T) {
	m, _ := newTestManager(t)
	for id := 1; id <= 3; id++ {
		_, err := m.AddToCart(product(id, 5, "S/ 10.00"), 1)
		require.NoError(t, err)
	}

	m.RemoveItem(2)
	m.RemoveItem(42)
	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 3, items[1].ID)

	m.Clear()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.TotalItemCount())
}

func TestTotals(t *testing.T) {
	m, _ := newTestManager(t)
	_, _ = m.AddToCart(product(1, 5, "S/ 50.00"), 1)
	_, _ = m.AddToCart(product(2, 5, "S/ 30.00"), 2)
	_, _ = m.AddToCart(product(3, 5, "precio a consultar"), 3)

	assert.Equal(t, 6, m.TotalItemCount())
	assert.True(t, m.TotalPrice().Equal(decimal.NewFromInt(110)), "got %s", m.TotalPrice())
}

func TestCartPersistsAcrossRestart(t *testing.T) {
	kv := database.NewMemoryStore()
	store := storage.New(kv, "test")

	m := NewManager(store)
	_, _ = m.AddToCart(product(2, 5, "S/ 30.00"), 2)
	_, _ = m.AddToCart(product(1, 5, "S/ 50.00"), 1)

	reloaded := NewManager(storage.New(kv, "test"))
	assert.Equal(t, m.Items(), reloaded.Items())
	assert.Equal(t, 2, reloaded.Items()[0].ID, "ordre d'insertion conservé")
}

func TestCorruptedCartFallsBackToEmpty(t *testing.T) {
	kv := database.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), "testCart", "not json"))

	m := NewManager(storage.New(kv, "test"))
	assert.True(t, m.IsEmpty())
}

func TestLoadDropsInvalidPersistedItems(t *testing.T) {
	kv := database.NewMemoryStore()
	store := storage.New(kv, "test")
	require.NoError(t, store.Write(storage.KeyCart, []models.CartItem{
		{Product: product(1, 0, "S/ 1.00"), Quantity: 2},
		{Product: product(2, 3, "S/ 1.00"), Quantity: 9},
		{Product: product(3, 3, "S/ 1.00"), Quantity: 0},
	}))

	items := NewManager(store).Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestReconcile(t *testing.T) {
	m, _ := newTestManager(t)
	_, _ = m.AddToCart(product(1, 5, "S/ 10.00"), 5)
	_, _ = m.AddToCart(product(2, 5, "S/ 10.00"), 1)
	_, _ = m.AddToCart(product(3, 5, "S/ 10.00"), 1)

	current := map[int]models.Product{
		1: product(1, 2, "S/ 12.00"),
		2: product(2, 0, "S/ 10.00"),
	}
	m.Reconcile(func(id int) (models.Product, bool) {
		p, ok := current[id]
		return p, ok
	})

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "S/ 12.00", items[0].Price)
}

func TestItemsReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)
	_, _ = m.AddToCart(product(1, 5, "S/ 10.00"), 1)

	items := m.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, m.Quantity(1))
}
