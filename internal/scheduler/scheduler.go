package scheduler

import (
	"sync"
	"time"
)

// Scheduler planifie des tâches différées liées à la durée de vie d'un composant.
// Après Close, aucune tâche en attente ne s'exécute.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[*Task]struct{}
	closed bool
	done   chan struct{}
}

// Task est une exécution différée, annulable une seule fois
type Task struct {
	s        *Scheduler
	mu       sync.Mutex
	timer    *time.Timer
	done     bool
	canceled bool
}

func New() *Scheduler {
	return &Scheduler{tasks: make(map[*Task]struct{}), done: make(chan struct{})}
}

// After exécute fn après d, sauf annulation ou fermeture du scheduler
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Task{s: s}
	if s.closed {
		t.done = true
		t.canceled = true
		return t
	}

	s.tasks[t] = struct{}{}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() {
		if !t.claim(false) {
			return
		}
		s.forget(t)
		fn()
	})
	t.mu.Unlock()
	return t
}

// claim marque la tâche comme consommée ; false si déjà exécutée ou annulée
func (t *Task) claim(cancel bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.canceled = cancel
	return true
}

// Cancel retourne true si la tâche n'avait pas encore démarré
func (t *Task) Cancel() bool {
	if t == nil || !t.claim(true) {
		return false
	}
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.mu.Unlock()
	t.s.forget(t)
	return true
}

// Canceled distingue une tâche annulée d'une tâche exécutée
func (t *Task) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// Done indique si la tâche a démarré ou a été annulée
func (t *Task) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (s *Scheduler) forget(t *Task) {
	s.mu.Lock()
	delete(s.tasks, t)
	s.mu.Unlock()
}

// Pending compte les tâches encore en attente
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Close annule toutes les tâches en attente ; les suivantes naissent annulées
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	pending := make([]*Task, 0, len(s.tasks))
	for t := range s.tasks {
		pending = append(pending, t)
	}
	s.mu.Unlock()

	for _, t := range pending {
		t.Cancel()
	}
}

// Done est fermé par Close
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
