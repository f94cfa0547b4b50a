package orders

import (
	"errors"
	"sync"

	"polo_storefront/internal/models"
	"polo_storefront/internal/validation"
)

// Step est l'étape courante du tunnel de commande
type Step int

const (
	StepIdentity Step = iota + 1
	StepDelivery
	StepPayment
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	ErrCheckoutSubmitted = errors.New("el pedido ya fue enviado")
	ErrNotPaymentStep    = errors.New("el pedido solo puede enviarse desde el paso de pago")
)

// Checkout est une tentative de commande. Submitted est terminal :
// une nouvelle commande démarre un nouveau Checkout.
type Checkout struct {
	mu    sync.Mutex
	step  Step
	data  models.CustomerData
	order *models.Order
}

// NewCheckout pré-remplit le formulaire avec le profil connecté
func NewCheckout(user *models.SessionUser) *Checkout {
	c := &Checkout{
		step: StepIdentity,
		data: models.CustomerData{
			DeliveryMethod: models.DeliveryHome,
			PaymentMethod:  models.PaymentTransfer,
		},
	}
	if user != nil {
		c.data.FirstName = user.FirstName
		c.data.LastName = user.LastName
		c.data.Email = user.Email
		c.data.Phone = user.Phone
		c.data.Address = user.Address
		c.data.City = user.City
		c.data.State = user.State
		c.data.ZipCode = user.ZipCode
	}
	return c
}

func ValidateIdentity(d models.CustomerData) validation.Errors {
	errs := validation.Errors{}
	errs.Required("firstName", d.FirstName, "El nombre es requerido")
	errs.Required("lastName", d.LastName, "El apellido es requerido")
	errs.Required("email", d.Email, "El email es requerido")
	errs.Required("phone", d.Phone, "El teléfono es requerido")
	if d.Email != "" && !validation.IsEmail(d.Email) {
		errs.Add("email", "Email inválido")
	}
	return errs
}

// ValidateDelivery n'exige l'adresse que pour la livraison à domicile
func ValidateDelivery(d models.CustomerData) validation.Errors {
	errs := validation.Errors{}
	switch d.DeliveryMethod {
	case models.DeliveryPickup:
		return errs
	case models.DeliveryHome:
	default:
		errs.Add("deliveryMethod", "Método de entrega inválido")
		return errs
	}
	errs.Required("address", d.Address, "La dirección es requerida")
	errs.Required("city", d.City, "La ciudad es requerida")
	errs.Required("state", d.State, "El departamento es requerido")
	return errs
}

func ValidatePayment(d models.CustomerData) validation.Errors {
	errs := validation.Errors{}
	if !d.PaymentMethod.Valid() {
		errs.Add("paymentMethod", "Método de pago inválido")
	}
	return errs
}

// gate renvoie la validation qui garde la sortie de l'étape
func gate(step Step, d models.CustomerData) validation.Errors {
	switch step {
	case StepIdentity:
		return ValidateIdentity(d)
	case StepDelivery:
		return ValidateDelivery(d)
	case StepPayment:
		return ValidatePayment(d)
	}
	return validation.Errors{}
}

func (c *Checkout) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Checkout) Data() models.CustomerData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Order renvoie la commande créée une fois l'étape Submitted atteinte
func (c *Checkout) Order() (models.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return models.Order{}, false
	}
	return cloneOrder(*c.order), true
}

// Update modifie les champs accumulés, à n'importe quelle étape non terminale
func (c *Checkout) Update(fn func(*models.CustomerData)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == StepSubmitted {
		return ErrCheckoutSubmitted
	}
	fn(&c.data)
	return nil
}

// Next avance d'une étape si la validation de l'étape courante passe
func (c *Checkout) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case StepSubmitted:
		return ErrCheckoutSubmitted
	case StepPayment:
		return ErrNotPaymentStep
	}

	if err := gate(c.step, c.data).Err(); err != nil {
		return err
	}
	c.step++
	return nil
}

// Back recule toujours (sauf depuis Submitted), sans perdre de données
func (c *Checkout) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step == StepSubmitted {
		return ErrCheckoutSubmitted
	}
	if c.step > StepIdentity {
		c.step--
	}
	return nil
}

// Submit revalide toutes les étapes et crée la commande via le Manager
func (c *Checkout) Submit(m *Manager, items []models.CartItem) (models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case StepSubmitted:
		return models.Order{}, ErrCheckoutSubmitted
	case StepPayment:
	default:
		return models.Order{}, ErrNotPaymentStep
	}

	errs := validation.Errors{}
	for _, step := range []Step{StepIdentity, StepDelivery, StepPayment} {
		for field, msg := range gate(step, c.data) {
			errs.Add(field, msg)
		}
	}
	if err := errs.Err(); err != nil {
		return models.Order{}, err
	}

	order, err := m.Submit(items, c.data)
	if err != nil {
		return models.Order{}, err
	}
	c.order = &order
	c.step = StepSubmitted
	return cloneOrder(order), nil
}
