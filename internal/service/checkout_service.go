package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/palteria/palteria_api/internal/cart"
	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/repository"
	"github.com/palteria/palteria_api/internal/utils"
)

// CheckoutForm carries the delivery details the customer fills in before
// confirming. Field names follow the storefront form.
type CheckoutForm struct {
	Phone        string `json:"telefono"`
	Business     string `json:"comercio"`
	Address      string `json:"direccion"`
	Locality     string `json:"localidad"`
	TimeWindow   string `json:"horario"`
	NeedsInvoice bool   `json:"necesitaFactura"`
	TaxID        string `json:"cuit"`
	Notes        string `json:"notas"`
}

// CheckoutService turns a session cart plus a validated form into a
// persisted order, updating the customer autofill cache along the way.
type CheckoutService struct {
	orders    *repository.OrderRepository
	customers *repository.CustomerRepository
	now       func() time.Time
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(orders *repository.OrderRepository, customers *repository.CustomerRepository) *CheckoutService {
	return &CheckoutService{orders: orders, customers: customers, now: time.Now}
}

// Validate applies the checkout form rules and returns a field-to-message
// mapping; an empty map means the form passes.
func (s *CheckoutService) Validate(form CheckoutForm) map[string]string {
	errs := map[string]string{}

	phone := utils.NormalizeDigits(form.Phone)
	if phone == "" {
		errs["telefono"] = "El teléfono es obligatorio."
	} else if len(phone) < 10 || len(phone) > 13 {
		errs["telefono"] = "Ingresá un teléfono válido (10 a 13 dígitos)."
	}

	if trimmed(form.Address) == "" {
		errs["direccion"] = "La dirección de entrega es obligatoria."
	}
	if trimmed(form.Locality) == "" {
		errs["localidad"] = "La localidad es obligatoria."
	}

	// Tax id only matters when an invoice is requested.
	if form.NeedsInvoice {
		taxID := utils.NormalizeDigits(form.TaxID)
		if taxID == "" {
			errs["cuit"] = "El CUIT es obligatorio si pedís factura."
		} else if len(taxID) != 11 {
			errs["cuit"] = "El CUIT debe tener 11 dígitos numéricos."
		}
	}

	return errs
}

// Confirm validates the form, snapshots the cart into an order, persists it,
// upserts the customer profile and clears the cart. A non-empty field map
// means validation blocked the order; err reports storage failures.
func (s *CheckoutService) Confirm(sessionCart *cart.Cart, form CheckoutForm) (models.Order, map[string]string, error) {
	items := sessionCart.Items()
	if len(items) == 0 {
		return models.Order{}, nil, utils.ErrEmptyCart
	}
	if errs := s.Validate(form); len(errs) > 0 {
		return models.Order{}, errs, nil
	}

	phone := utils.NormalizeDigits(form.Phone)
	taxID := ""
	if form.NeedsInvoice {
		taxID = utils.NormalizeDigits(form.TaxID)
	}

	nowISO := s.now().UTC().Format(time.RFC3339)
	order := models.Order{
		ID:        uuid.New().String(),
		CreatedAt: nowISO,
		Status:    models.StatusPending,
		Customer: models.Customer{
			Phone:      phone,
			Business:   trimmed(form.Business),
			Address:    trimmed(form.Address),
			Locality:   trimmed(form.Locality),
			TimeWindow: trimmed(form.TimeWindow),
			TaxID:      taxID,
			Notes:      trimmed(form.Notes),
		},
		Items:          make([]models.OrderItem, 0, len(items)),
		TotalCrates:    sessionCart.TotalCrates(),
		TotalEstimated: sessionCart.TotalEstimated(),
	}
	for _, line := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:      line.Product.ID,
			Name:           line.Product.Name,
			KilosPerCrate:  line.Product.KilosPerCrate,
			PricePerCrate:  line.Product.PricePerCrate,
			QuantityCrates: line.QuantityCrates,
		})
	}

	if err := s.orders.Create(order); err != nil {
		return models.Order{}, nil, err
	}

	// Autofill cache for the next visit; losing it never fails a checkout.
	profile := models.CustomerProfile{
		Phone:       phone,
		Business:    order.Customer.Business,
		Address:     order.Customer.Address,
		Locality:    order.Customer.Locality,
		TimeWindow:  order.Customer.TimeWindow,
		TaxID:       taxID,
		LastOrderAt: nowISO,
	}
	if err := s.customers.Upsert(profile); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("customer profile upsert failed")
	}
	if err := s.customers.SetLastPhone(phone); err != nil {
		log.Warn().Err(err).Msg("last phone write failed")
	}

	sessionCart.Clear()

	log.Info().
		Str("order_id", order.ID).
		Int("total_crates", order.TotalCrates).
		Float64("total_estimated", order.TotalEstimated).
		Msg("order created")
	return order, nil, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
