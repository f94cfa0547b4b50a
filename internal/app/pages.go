package app

import (
	"fmt"

	"polo_storefront/internal/orders"
)

// Page identifie une vue de la boutique
type Page string

const (
	PageHome      Page = "home"
	PageProducts  Page = "products"
	PageCheckout  Page = "checkout"
	PageAuth      Page = "auth"
	PageProfile   Page = "profile"
	PageFavorites Page = "favorites"
)

// pageController décide de la page réellement affichée ; appelé sous s.mu
type pageController func(s *Storefront) Page

var pageControllers = map[Page]pageController{
	PageHome:      stay(PageHome),
	PageProducts:  stay(PageProducts),
	PageFavorites: stay(PageFavorites),
	PageAuth:      enterAuth,
	PageProfile:   enterProfile,
	PageCheckout:  enterCheckout,
}

func stay(p Page) pageController {
	return func(*Storefront) Page { return p }
}

// Déjà connecté : inutile d'afficher le formulaire
func enterAuth(s *Storefront) Page {
	if s.Identity.IsAuthenticated() {
		return PageProfile
	}
	return PageAuth
}

func enterProfile(s *Storefront) Page {
	if !s.Identity.IsAuthenticated() {
		return PageAuth
	}
	return PageProfile
}

// La commande exige un panier non vide et une session ; chaque entrée
// démarre une nouvelle tentative pré-remplie depuis le profil.
func enterCheckout(s *Storefront) Page {
	if s.Cart.IsEmpty() {
		return PageHome
	}
	user, ok := s.Identity.Current()
	if !ok {
		return PageAuth
	}
	if s.page != PageCheckout || s.checkout == nil {
		s.checkout = orders.NewCheckout(&user)
	}
	return PageCheckout
}

// Navigate applique le contrôleur de la page demandée et retourne la page atteinte
func (s *Storefront) Navigate(target Page) (Page, error) {
	controller, ok := pageControllers[target]
	if !ok {
		return "", fmt.Errorf("página desconocida: %q", target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = controller(s)
	if s.page != PageCheckout {
		s.checkout = nil
	}
	return s.page, nil
}
