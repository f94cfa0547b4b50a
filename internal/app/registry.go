package app

import (
	"context"
	"log"
	"sync"
	"time"

	"polo_storefront/internal/database"
)

// Registry associe chaque appareil à sa propre Storefront, dans un espace
// de clés isolé : l'équivalent d'un localStorage par navigateur.
// Les boutiques inactives sont libérées par Sweep ; leur état reste persisté.
type Registry struct {
	mu     sync.Mutex
	kv     database.KeyValueStore
	opts   Options
	now    func() time.Time
	fronts map[string]*entry
}

type entry struct {
	front    *Storefront
	lastSeen time.Time
}

func NewRegistry(kv database.KeyValueStore, opts Options) *Registry {
	return &Registry{kv: kv, opts: opts, now: time.Now, fronts: make(map[string]*entry)}
}

// Get charge la Storefront de l'appareil à la première demande
func (r *Registry) Get(deviceID string) *Storefront {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.fronts[deviceID]; ok {
		e.lastSeen = r.now()
		return e.front
	}
	s := New(database.Namespace(r.kv, "device:"+deviceID+":"), r.opts)
	r.fronts[deviceID] = &entry{front: s, lastSeen: r.now()}
	log.Printf("🛍️ Boutique chargée pour l'appareil %s", deviceID)
	return s
}

// Len compte les boutiques en mémoire
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fronts)
}

// Evict libère la Storefront ; l'état persisté reste en place
func (r *Registry) Evict(deviceID string) {
	r.mu.Lock()
	e, ok := r.fronts[deviceID]
	delete(r.fronts, deviceID)
	r.mu.Unlock()

	if ok {
		e.front.Close()
	}
}

// Sweep libère les boutiques sans accès depuis plus de idle
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []*Storefront
	for id, e := range r.fronts {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.front)
			delete(r.fronts, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		log.Printf("🧹 %d boutique(s) inactive(s) libérée(s)", len(stale))
	}
	return len(stale)
}

// RunJanitor appelle Sweep à chaque interval jusqu'à l'annulation de ctx
func (r *Registry) RunJanitor(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(idle)
		}
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	fronts := r.fronts
	r.fronts = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range fronts {
		e.front.Close()
	}
}
