package notify

import (
	"sync"
	"time"

	"polo_storefront/internal/scheduler"
)

// DefaultDuration correspond au délai d'affichage de la boutique
const DefaultDuration = 3 * time.Second

// Toaster gère la notification transitoire : une seule à la fois,
// fermée automatiquement après duration ou manuellement via Dismiss.
type Toaster struct {
	mu       sync.Mutex
	sched    *scheduler.Scheduler
	duration time.Duration
	message  string
	task     *scheduler.Task
	seq      uint64
}

func NewToaster(sched *scheduler.Scheduler, duration time.Duration) *Toaster {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Toaster{sched: sched, duration: duration}
}

// Show remplace la notification courante et réarme la fermeture automatique
func (t *Toaster) Show(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.task.Cancel()
	t.message = message
	t.seq++

	seq := t.seq
	t.task = t.sched.After(t.duration, func() {
		t.expire(seq)
	})
}

// expire ne ferme que si la notification affichée est toujours celle armée
func (t *Toaster) expire(seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seq != seq {
		return
	}
	t.message = ""
	t.task = nil
}

// Dismiss ferme la notification et annule le minuteur
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.task.Cancel()
	t.task = nil
	t.message = ""
}

func (t *Toaster) Current() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message, t.message != ""
}
