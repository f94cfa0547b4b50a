package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"polo_storefront/internal/database"
	"polo_storefront/internal/models"
	"polo_storefront/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []models.CartItem {
	return []models.CartItem{
		{Product: models.Product{ID: 1, Name: "Licuadora", Price: "S/ 50.00", Stock: 5}, Quantity: 1},
		{Product: models.Product{ID: 2, Name: "Cable", Price: "S/ 30.00", Stock: 5}, Quantity: 2},
	}
}

func sampleCustomer() models.CustomerData {
	return models.CustomerData{
		FirstName:      "Ana",
		LastName:       "Quispe",
		Email:          "ana@polo.pe",
		Phone:          "987654321",
		DeliveryMethod: models.DeliveryHome,
		Address:        "Av. Arequipa 100",
		City:           "Lima",
		State:          "Lima",
		PaymentMethod:  models.PaymentCash,
	}
}

func TestSubmitComputesTotalAndPending(t *testing.T) {
	m := NewManager(storage.New(database.NewMemoryStore(), "test"))

	order, err := m.Submit(sampleItems(), sampleCustomer())
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("110.00")), "got %s", order.Total)
	assert.WithinDuration(t, time.Now(), order.Date, time.Minute)
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	m := NewManager(storage.New(database.NewMemoryStore(), "test"))
	_, err := m.Submit(nil, sampleCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, m.All())
}

func TestOrderIsSnapshot(t *testing.T) {
	m := NewManager(storage.New(database.NewMemoryStore(), "test"))
	items := sampleItems()

	order, err := m.Submit(items, sampleCustomer())
	require.NoError(t, err)

	// Modifier le panier après coup ne touche pas la commande
	items[0].Quantity = 5
	items[1].Name = "modifié"

	stored, ok := m.ByID(order.ID)
	require.True(t, ok)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.Equal(t, "Cable", stored.Items[1].Name)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(110)))
}

func TestOrdersAreAppended(t *testing.T) {
	kv := database.NewMemoryStore()
	m := NewManager(storage.New(kv, "test"))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	m.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Hour)
	}

	first, err := m.Submit(sampleItems(), sampleCustomer())
	require.NoError(t, err)
	other := sampleCustomer()
	other.Email = "otro@polo.pe"
	_, err = m.Submit(sampleItems()[:1], other)
	require.NoError(t, err)
	second, err := m.Submit(sampleItems(), sampleCustomer())
	require.NoError(t, err)

	reloaded := NewManager(storage.New(kv, "test"))
	all := reloaded.All()
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID)

	mine := reloaded.ForUser("ana@polo.pe")
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "plus récente d'abord")
	assert.Equal(t, first.ID, mine[1].ID)

	_, ok := reloaded.ByID("inconnu")
	assert.False(t, ok)
}

func TestOrderRoundTrip(t *testing.T) {
	kv := database.NewMemoryStore()
	m := NewManager(storage.New(kv, "test"))
	m.now = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }

	order, err := m.Submit(sampleItems(), sampleCustomer())
	require.NoError(t, err)

	stored, ok := NewManager(storage.New(kv, "test")).ByID(order.ID)
	require.True(t, ok)
	assert.Equal(t, order.Items, stored.Items)
	assert.Equal(t, order.CustomerData, stored.CustomerData)
	assert.True(t, order.Date.Equal(stored.Date))
	assert.True(t, order.Total.Equal(stored.Total))
}

var errBackend = errors.New("backend indisponible")

// flakyStore fait échouer les prochaines lectures, comme un Redis qui expire
type flakyStore struct {
	*database.MemoryStore
	failGets int
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGets > 0 {
		f.failGets--
		return "", false, errBackend
	}
	return f.MemoryStore.Get(ctx, key)
}

func TestSubmitKeepsOrdersWhenReadFails(t *testing.T) {
	kv := &flakyStore{MemoryStore: database.NewMemoryStore()}
	m := NewManager(storage.New(kv, "test"))
	for i := 0; i < 3; i++ {
		_, err := m.Submit(sampleItems(), sampleCustomer())
		require.NoError(t, err)
	}

	kv.failGets = 1
	_, err := m.Submit(sampleItems(), sampleCustomer())
	assert.ErrorIs(t, err, errBackend)
	assert.Len(t, m.All(), 3)

	_, err = m.Submit(sampleItems(), sampleCustomer())
	require.NoError(t, err)
	assert.Len(t, m.All(), 4)
}

func TestSubmitOverCorruptedListStartsFresh(t *testing.T) {
	kv := database.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), "testOrders", `[{"id":"a"},{"id":42}]`))
	m := NewManager(storage.New(kv, "test"))

	_, err := m.Submit(sampleItems(), sampleCustomer())
	require.NoError(t, err)

	all := m.All()
	require.Len(t, all, 1, "aucune entrée partiellement décodée n'est conservée")
	assert.NotEqual(t, "a", all[0].ID)
}
