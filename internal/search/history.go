package search

import (
	"strings"
	"sync"

	"polo_storefront/internal/storage"
)

// MaxEntries borne l'historique de recherche
const MaxEntries = 5

// History garde les derniers termes validés, le plus récent en tête.
// Absence de clé et liste vide sont équivalents : Clear supprime la clé.
type History struct {
	mu      sync.Mutex
	store   *storage.Adapter
	entries []string
}

func NewHistory(store *storage.Adapter) *History {
	h := &History{store: store, entries: []string{}}
	var entries []string
	if store.Load(storage.KeySearchHistory, &entries) && entries != nil {
		if len(entries) > MaxEntries {
			entries = entries[:MaxEntries]
		}
		h.entries = entries
	}
	return h
}

// Commit enregistre un terme soumis explicitement (pas chaque frappe)
func (h *History) Commit(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]string, 0, MaxEntries)
	entries = append(entries, term)
	for _, existing := range h.entries {
		if strings.EqualFold(existing, term) {
			continue
		}
		if len(entries) == MaxEntries {
			break
		}
		entries = append(entries, existing)
	}

	h.entries = entries
	h.store.Save(storage.KeySearchHistory, h.entries)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []string{}
	h.store.Delete(storage.KeySearchHistory)
}

func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
