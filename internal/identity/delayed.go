package identity

import (
	"time"

	"polo_storefront/internal/models"
	"polo_storefront/internal/scheduler"
)

// Result est l'issue d'une connexion ou inscription différée
type Result func(models.SessionUser, error)

// LoginAfter simule la latence réseau avant de tenter la connexion.
// Si la tâche est annulée ou le scheduler fermé, rien n'est appliqué.
func (m *Manager) LoginAfter(s *scheduler.Scheduler, delay time.Duration, email, password string, done Result) *scheduler.Task {
	return s.After(delay, func() {
		done(m.Login(email, password))
	})
}

// RegisterAfter est l'équivalent différé de Register
func (m *Manager) RegisterAfter(s *scheduler.Scheduler, delay time.Duration, form Registration, done Result) *scheduler.Task {
	return s.After(delay, func() {
		done(m.Register(form))
	})
}
