package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/palteria/palteria_api/internal/cart"
	"github.com/palteria/palteria_api/internal/middleware"
	"github.com/palteria/palteria_api/internal/repository"
	"github.com/palteria/palteria_api/internal/service"
	"github.com/palteria/palteria_api/internal/utils"
)

// CheckoutHandler confirms the session cart into a persisted order.
type CheckoutHandler struct {
	sessions        *cart.Sessions
	checkoutService *service.CheckoutService
	customers       *repository.CustomerRepository
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(sessions *cart.Sessions, checkoutService *service.CheckoutService, customers *repository.CustomerRepository) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, checkoutService: checkoutService, customers: customers}
}

// Confirm validates the delivery form and creates the order.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var form service.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	sc := h.sessions.Get(middleware.SessionID(c))
	order, fieldErrs, err := h.checkoutService.Confirm(sc, form)
	if err != nil {
		if errors.Is(err, utils.ErrEmptyCart) {
			utils.Error(c, 409, "EMPTY_CART", "The cart is empty")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create order")
		return
	}
	if len(fieldErrs) > 0 {
		utils.ValidationError(c, fieldErrs)
		return
	}

	utils.Success(c, 201, "Order created successfully", order)
}

// GetProfile returns the cached delivery details for a phone, used by the
// checkout form to autofill repeat customers.
func (h *CheckoutHandler) GetProfile(c *gin.Context) {
	profile, ok := h.customers.FindByPhone(c.Param("phone"))
	if !ok {
		utils.Error(c, 404, "UNKNOWN_CUSTOMER", "No profile stored for that phone")
		return
	}
	utils.Success(c, 200, "Profile retrieved successfully", profile)
}

// GetLastPhone returns the phone used on the most recent checkout.
func (h *CheckoutHandler) GetLastPhone(c *gin.Context) {
	utils.Success(c, 200, "Last phone retrieved successfully", gin.H{
		"phone": h.customers.LastPhone(),
	})
}
