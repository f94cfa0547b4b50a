package app

import (
	"context"
	"testing"
	"time"

	"polo_storefront/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsolatesDevices(t *testing.T) {
	kv := database.NewMemoryStore()
	r := NewRegistry(kv, testOptions())
	defer r.Close()

	a := r.Get("a")
	b := r.Get("b")
	assert.Same(t, a, r.Get("a"))

	_, err := a.AddToCart(1, 2)
	require.NoError(t, err)
	assert.True(t, b.Cart.IsEmpty())

	// Après éviction, l'état est relu depuis le store
	r.Evict("a")
	reloaded := r.Get("a")
	assert.NotSame(t, a, reloaded)
	assert.Equal(t, 2, reloaded.Cart.Quantity(1))
}

func TestSweepEvictsIdleDevices(t *testing.T) {
	kv := database.NewMemoryStore()
	r := NewRegistry(kv, testOptions())
	defer r.Close()

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	idle := r.Get("ancien")
	_, err := idle.AddToCart(2, 1)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	r.Get("actif")

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, r.Sweep(30*time.Minute))
	assert.Equal(t, 1, r.Len())

	// Une boutique libérée est rechargée depuis le store
	assert.Equal(t, 1, r.Get("ancien").Cart.Quantity(2))
	assert.Equal(t, 2, r.Len())
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	r := NewRegistry(database.NewMemoryStore(), testOptions())
	defer r.Close()
	r.Get("a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.RunJanitor(ctx, time.Millisecond, 0)
		close(done)
	}()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("le nettoyage ne s'arrête pas")
	}
}
