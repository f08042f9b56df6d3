package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/palteria/palteria_api/internal/cart"
	"github.com/palteria/palteria_api/internal/middleware"
	"github.com/palteria/palteria_api/internal/service"
	"github.com/palteria/palteria_api/internal/utils"
)

// CartHandler exposes the session cart. The cart never touches storage; it
// lives in memory for the duration of the storefront session.
type CartHandler struct {
	sessions       *cart.Sessions
	catalogService *service.CatalogService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(sessions *cart.Sessions, catalogService *service.CatalogService) *CartHandler {
	return &CartHandler{sessions: sessions, catalogService: catalogService}
}

func (h *CartHandler) sessionCart(c *gin.Context) *cart.Cart {
	return h.sessions.Get(middleware.SessionID(c))
}

func cartView(sc *cart.Cart) gin.H {
	return gin.H{
		"items":          sc.Items(),
		"totalCrates":    sc.TotalCrates(),
		"totalEstimated": sc.TotalEstimated(),
	}
}

// GetCart returns the current cart with totals.
func (h *CartHandler) GetCart(c *gin.Context) {
	utils.Success(c, 200, "Cart retrieved successfully", cartView(h.sessionCart(c)))
}

// AddItem adds one crate of a published product to the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID int `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	entry, ok := h.catalogService.EntryForProduct(req.ProductID)
	if !ok {
		utils.Error(c, 404, "UNKNOWN_PRODUCT", "Product is not in today's published catalog")
		return
	}

	sc := h.sessionCart(c)
	sc.Add(entry)
	utils.Success(c, 200, "Item added", cartView(sc))
}

// RemoveItem takes one crate of the product out of the cart, or the whole
// line when ?all=true.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	sc := h.sessionCart(c)
	if c.Query("all") == "true" {
		sc.RemoveAll(productID)
	} else {
		sc.Remove(productID)
	}
	utils.Success(c, 200, "Item removed", cartView(sc))
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sc := h.sessionCart(c)
	sc.Clear()
	utils.Success(c, 200, "Cart cleared", cartView(sc))
}
