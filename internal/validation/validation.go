package validation

import (
	"regexp"
	"sort"
	"strings"
)

// Errors associe un champ de formulaire à son message d'erreur.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Add n'écrase pas un message déjà présent pour le champ
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Required ajoute le message si la valeur est vide
func (e Errors) Required(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, message)
	}
}

// Err renvoie nil quand aucun champ n'est en erreur
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// IsEmail : règle souple, quelque chose@domaine.ext
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}
