package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"polo_storefront/internal/cart"
	"polo_storefront/internal/catalog"
	"polo_storefront/internal/database"
	"polo_storefront/internal/favorites"
	"polo_storefront/internal/identity"
	"polo_storefront/internal/models"
	"polo_storefront/internal/notify"
	"polo_storefront/internal/orders"
	"polo_storefront/internal/preferences"
	"polo_storefront/internal/scheduler"
	"polo_storefront/internal/search"
	"polo_storefront/internal/storage"
)

var (
	ErrUnknownProduct = errors.New("producto no encontrado")
	ErrNoCheckout     = errors.New("no hay un pedido en curso")
	ErrClosed         = errors.New("tienda cerrada")
)

type Options struct {
	Prefix        string
	Catalog       *catalog.Provider
	AuthDelay     time.Duration
	ToastDuration time.Duration
}

// Storefront est l'état applicatif explicite d'un client : il possède chaque
// manager et orchestre les actions de l'utilisateur.
type Storefront struct {
	Catalog     *catalog.Provider
	Identity    *identity.Manager
	Cart        *cart.Manager
	Favorites   *favorites.Manager
	Search      *search.History
	Orders      *orders.Manager
	Preferences *preferences.Manager
	Toast       *notify.Toaster

	sched     *scheduler.Scheduler
	authDelay time.Duration

	mu       sync.Mutex
	page     Page
	checkout *orders.Checkout
}

// New charge chaque manager depuis le store ; le panier est réaligné sur le catalogue
func New(kv database.KeyValueStore, opts Options) *Storefront {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	store := storage.New(kv, opts.Prefix)
	sched := scheduler.New()

	s := &Storefront{
		Catalog:     opts.Catalog,
		Identity:    identity.NewManager(store),
		Cart:        cart.NewManager(store),
		Favorites:   favorites.NewManager(store),
		Search:      search.NewHistory(store),
		Orders:      orders.NewManager(store),
		Preferences: preferences.NewManager(store),
		Toast:       notify.NewToaster(sched, opts.ToastDuration),
		sched:       sched,
		authDelay:   opts.AuthDelay,
		page:        PageHome,
	}
	s.Cart.Reconcile(s.Catalog.ByID)
	return s
}

// Close annule les minuteurs en attente ; plus rien n'est appliqué ensuite
func (s *Storefront) Close() {
	s.sched.Close()
}

func (s *Storefront) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// AddToCart ajoute un produit du catalogue et affiche la confirmation
func (s *Storefront) AddToCart(productID, quantity int) (string, error) {
	product, ok := s.Catalog.ByID(productID)
	if !ok {
		return "", ErrUnknownProduct
	}
	msg, err := s.Cart.AddToCart(product, quantity)
	if err != nil {
		return "", err
	}
	s.Toast.Show(msg)
	return msg, nil
}

// ToggleFavorite bascule le favori et affiche le message correspondant
func (s *Storefront) ToggleFavorite(productID int) (bool, error) {
	product, ok := s.Catalog.ByID(productID)
	if !ok {
		return false, ErrUnknownProduct
	}
	added := s.Favorites.Toggle(productID)
	if added {
		s.Toast.Show(fmt.Sprintf("%s agregado a favoritos", product.Name))
	} else {
		s.Toast.Show(fmt.Sprintf("%s eliminado de favoritos", product.Name))
	}
	return added, nil
}

// SearchProducts filtre et trie le catalogue ; commit enregistre le terme
func (s *Storefront) SearchProducts(term, category, sortBy string, commit bool) []models.Product {
	if commit {
		s.Search.Commit(term)
	}
	products := s.Catalog.Filter(term, category)
	if sortBy != "" {
		catalog.Sort(products, sortBy)
	}
	return products
}

// waitAuth attend une connexion différée ; l'annulation du contexte jette le résultat
func (s *Storefront) waitAuth(ctx context.Context, schedule func(identity.Result) *scheduler.Task) (models.SessionUser, error) {
	type outcome struct {
		user models.SessionUser
		err  error
	}
	results := make(chan outcome, 1)
	task := schedule(func(user models.SessionUser, err error) {
		results <- outcome{user, err}
	})

	select {
	case r := <-results:
		if r.err != nil {
			return models.SessionUser{}, r.err
		}
		s.afterLogin()
		return r.user, nil
	case <-ctx.Done():
		if task.Cancel() {
			return models.SessionUser{}, ctx.Err()
		}
	case <-s.sched.Done():
		if task.Cancel() {
			return models.SessionUser{}, ErrClosed
		}
	}

	// Annulée par la fermeture : aucun résultat ne viendra
	if task.Canceled() {
		return models.SessionUser{}, ErrClosed
	}
	// Déjà en cours d'exécution : on laisse le résultat s'appliquer
	r := <-results
	return r.user, r.err
}

// afterLogin poursuit vers la commande interrompue par la connexion
func (s *Storefront) afterLogin() {
	if _, err := s.Navigate(PageCheckout); err != nil {
		log.Printf("⚠️ Navigation après connexion: %v", err)
	}
}

// Login résout après la latence simulée
func (s *Storefront) Login(ctx context.Context, email, password string) (models.SessionUser, error) {
	return s.waitAuth(ctx, func(done identity.Result) *scheduler.Task {
		return s.Identity.LoginAfter(s.sched, s.authDelay, email, password, done)
	})
}

func (s *Storefront) Register(ctx context.Context, form identity.Registration) (models.SessionUser, error) {
	return s.waitAuth(ctx, func(done identity.Result) *scheduler.Task {
		return s.Identity.RegisterAfter(s.sched, s.authDelay, form, done)
	})
}

// Logout ferme la session et revient à l'accueil
func (s *Storefront) Logout() {
	s.Identity.Logout()
	s.mu.Lock()
	s.checkout = nil
	s.page = PageHome
	s.mu.Unlock()
}

// ProceedToCheckout démarre une nouvelle tentative de commande
func (s *Storefront) ProceedToCheckout() (Page, error) {
	return s.Navigate(PageCheckout)
}

// Checkout renvoie la tentative en cours
func (s *Storefront) Checkout() (*orders.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return nil, ErrNoCheckout
	}
	return s.checkout, nil
}

// CompleteOrder soumet la commande puis vide le panier et revient à l'accueil
func (s *Storefront) CompleteOrder() (models.Order, error) {
	c, err := s.Checkout()
	if err != nil {
		return models.Order{}, err
	}

	order, err := c.Submit(s.Orders, s.Cart.Items())
	if err != nil {
		return models.Order{}, err
	}

	s.Cart.Clear()
	s.mu.Lock()
	s.checkout = nil
	s.page = PageHome
	s.mu.Unlock()

	s.Toast.Show("¡Pedido confirmado!")
	return order, nil
}
