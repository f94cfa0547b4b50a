package preferences

import (
	"fmt"
	"sync"

	"polo_storefront/internal/models"
	"polo_storefront/internal/storage"
)

// Manager persiste les réglages d'affichage, chacun sous sa propre clé
type Manager struct {
	mu    sync.Mutex
	store *storage.Adapter
	prefs models.Preferences
}

func NewManager(store *storage.Adapter) *Manager {
	m := &Manager{store: store, prefs: models.Preferences{ViewMode: models.ViewGrid}}

	store.Load(storage.KeyDarkMode, &m.prefs.DarkMode)
	store.Load(storage.KeyBigText, &m.prefs.BigText)

	var mode models.ViewMode
	if store.Load(storage.KeyViewMode, &mode) && mode.Valid() {
		m.prefs.ViewMode = mode
	}
	return m
}

func (m *Manager) Get() models.Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

func (m *Manager) SetDarkMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.DarkMode = on
	m.store.Save(storage.KeyDarkMode, on)
}

func (m *Manager) ToggleDarkMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.DarkMode = !m.prefs.DarkMode
	m.store.Save(storage.KeyDarkMode, m.prefs.DarkMode)
	return m.prefs.DarkMode
}

func (m *Manager) SetBigText(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.BigText = on
	m.store.Save(storage.KeyBigText, on)
}

func (m *Manager) ToggleBigText() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.BigText = !m.prefs.BigText
	m.store.Save(storage.KeyBigText, m.prefs.BigText)
	return m.prefs.BigText
}

func (m *Manager) SetViewMode(mode models.ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("mode d'affichage inconnu: %q", mode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.ViewMode = mode
	m.store.Save(storage.KeyViewMode, mode)
	return nil
}
