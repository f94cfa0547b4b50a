package identity

import (
	"polo_storefront/internal/models"
	"polo_storefront/internal/validation"
)

// MinPasswordLength est la longueur minimale acceptée
const MinPasswordLength = 6

// Registration est le formulaire d'inscription
type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
}

func validateCredentials(errs validation.Errors, email, password string) {
	if email == "" {
		errs.Add("email", "El email es requerido")
	} else if !validation.IsEmail(email) {
		errs.Add("email", "Email inválido")
	}

	if password == "" {
		errs.Add("password", "La contraseña es requerida")
	} else if len(password) < MinPasswordLength {
		errs.Add("password", "La contraseña debe tener al menos 6 caracteres")
	}
}

// Validate renvoie une validation.Errors par champ, ou nil
func (r Registration) Validate() error {
	errs := validation.Errors{}
	validateCredentials(errs, r.Email, r.Password)
	errs.Required("firstName", r.FirstName, "El nombre es requerido")
	errs.Required("lastName", r.LastName, "El apellido es requerido")
	errs.Required("phone", r.Phone, "El teléfono es requerido")
	if r.Password != r.ConfirmPassword {
		errs.Add("confirmPassword", "Las contraseñas no coinciden")
	}
	return errs.Err()
}

func ValidateLogin(email, password string) error {
	errs := validation.Errors{}
	validateCredentials(errs, email, password)
	return errs.Err()
}

func ValidateProfile(p models.Profile) error {
	errs := validation.Errors{}
	errs.Required("firstName", p.FirstName, "El nombre es requerido")
	errs.Required("lastName", p.LastName, "El apellido es requerido")
	errs.Required("phone", p.Phone, "El teléfono es requerido")
	return errs.Err()
}
