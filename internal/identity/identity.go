package identity

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"polo_storefront/internal/models"
	"polo_storefront/internal/storage"
	"polo_storefront/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRegistered  = errors.New("Este email ya está registrado")
	ErrInvalidCredentials = errors.New("Credenciales inválidas")
	ErrNotAuthenticated   = errors.New("usuario no autenticado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)

// Manager gère les comptes et l'unique session active (Anonyme / Authentifié).
type Manager struct {
	mu      sync.Mutex
	store   *storage.Adapter
	session *models.SessionUser
	now     func() time.Time
	newID   func() string
}

// NewManager restaure la session persistée, sans revalider le mot de passe
func NewManager(store *storage.Adapter) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}

	var session models.SessionUser
	if store.Load(storage.KeyCurrentUser, &session) && session.ID != "" {
		m.session = &session
		log.Printf("✅ Session restaurée pour %s", session.Email)
	}
	return m
}

// loadUsers relit les comptes ; une panne du backend est remontée pour
// qu'aucune réécriture ne parte d'une liste incomplète
func (m *Manager) loadUsers() ([]models.UserRecord, error) {
	users := []models.UserRecord{}
	if err := m.store.Fetch(storage.KeyUsers, &users); err != nil {
		log.Printf("❌ Lecture des comptes impossible: %v", err)
		return nil, err
	}
	return users, nil
}

func (m *Manager) authenticate(user models.UserRecord) models.SessionUser {
	session := user.Session()
	m.session = &session
	m.store.Save(storage.KeyCurrentUser, session)
	return session
}

// Register crée le compte puis ouvre la session. L'email est comparé tel quel.
func (m *Manager) Register(form Registration) (models.SessionUser, error) {
	if err := form.Validate(); err != nil {
		return models.SessionUser{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := m.loadUsers()
	if err != nil {
		return models.SessionUser{}, err
	}
	for _, u := range users {
		if u.Email == form.Email {
			return models.SessionUser{}, ErrAlreadyRegistered
		}
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return models.SessionUser{}, fmt.Errorf("hash mot de passe: %w", err)
	}

	user := models.UserRecord{
		ID:        m.newID(),
		Email:     form.Email,
		Password:  hash,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		CreatedAt: m.now().UTC(),
	}

	users = append(users, user)
	if err := m.store.Write(storage.KeyUsers, users); err != nil {
		return models.SessionUser{}, err
	}

	log.Printf("👤 Nouveau compte %s", user.Email)
	return m.authenticate(user), nil
}

// Login cherche le compte par email exact et vérifie le mot de passe.
// Les anciens mots de passe stockés en clair sont migrés vers Argon2id.
func (m *Manager) Login(email, password string) (models.SessionUser, error) {
	if err := ValidateLogin(email, password); err != nil {
		return models.SessionUser{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := m.loadUsers()
	if err != nil {
		return models.SessionUser{}, err
	}
	for i, u := range users {
		if u.Email != email {
			continue
		}
		ok, needsRehash := utils.VerifyLegacyPassword(password, u.Password)
		if !ok {
			break
		}
		if needsRehash {
			if hash, err := utils.HashPassword(password); err == nil {
				users[i].Password = hash
				m.store.Save(storage.KeyUsers, users)
				log.Printf("🔐 Mot de passe migré vers Argon2id pour %s", u.Email)
			}
		}
		return m.authenticate(users[i]), nil
	}

	return models.SessionUser{}, ErrInvalidCredentials
}

// Logout supprime la clé de session persistée
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil
	m.store.Delete(storage.KeyCurrentUser)
}

// UpdateProfile réécrit le compte connecté et rafraîchit la session.
// L'email (clé naturelle) n'est pas modifiable ici.
func (m *Manager) UpdateProfile(profile models.Profile) (models.SessionUser, error) {
	if err := ValidateProfile(profile); err != nil {
		return models.SessionUser{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return models.SessionUser{}, ErrNotAuthenticated
	}

	users, err := m.loadUsers()
	if err != nil {
		return models.SessionUser{}, err
	}
	for i := range users {
		if users[i].ID != m.session.ID {
			continue
		}
		users[i].Apply(profile)
		if err := m.store.Write(storage.KeyUsers, users); err != nil {
			return models.SessionUser{}, err
		}
		return m.authenticate(users[i]), nil
	}

	// Compte absent de la liste : la session reste la seule source
	log.Printf("⚠️ Compte %s introuvable, seul le profil de session est mis à jour", m.session.ID)
	record := models.UserRecord{
		ID:    m.session.ID,
		Email: m.session.Email,
	}
	record.Apply(profile)
	return m.authenticate(record), nil
}

func (m *Manager) Current() (models.SessionUser, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return models.SessionUser{}, false
	}
	return *m.session, true
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}
