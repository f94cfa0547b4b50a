package models

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func (v ViewMode) Valid() bool {
	return v == ViewGrid || v == ViewList
}

// Preferences regroupe les réglages d'affichage persistés
type Preferences struct {
	DarkMode bool     `json:"darkMode"`
	ViewMode ViewMode `json:"viewMode"`
	BigText  bool     `json:"bigText"`
}
