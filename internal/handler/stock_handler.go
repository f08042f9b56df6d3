package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/palteria/palteria_api/internal/service"
	"github.com/palteria/palteria_api/internal/utils"
)

// StockHandler exposes the admin stock page: the daily grid, per-product
// upserts, and the publish action that takes the catalog live.
type StockHandler struct {
	catalogService *service.CatalogService
}

// NewStockHandler constructs a StockHandler.
func NewStockHandler(catalogService *service.CatalogService) *StockHandler {
	return &StockHandler{catalogService: catalogService}
}

// ListProducts returns the whole product catalog, inactive entries included.
func (h *StockHandler) ListProducts(c *gin.Context) {
	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products": h.catalogService.ListProducts(),
	})
}

// GetStockGrid returns today's stock rows for every active product.
func (h *StockHandler) GetStockGrid(c *gin.Context) {
	utils.Success(c, 200, "Stock retrieved successfully", gin.H{
		"rows": h.catalogService.StockGrid(),
	})
}

// UpsertStock replaces today's record for one product.
func (h *StockHandler) UpsertStock(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req struct {
		StockCrates   int     `json:"stockCajones"`
		PricePerCrate float64 `json:"precioPorCajon"`
		Published     bool    `json:"publicado"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.StockCrates < 0 || req.PricePerCrate < 0 {
		utils.Error(c, 400, "INVALID_REQUEST", "Stock and price must not be negative")
		return
	}

	if err := h.catalogService.UpsertStock(productID, req.StockCrates, req.PricePerCrate, req.Published); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to save stock")
		return
	}
	utils.Success(c, 200, "Stock saved", nil)
}

// Publish recomputes publication for today's rows and goes live.
func (h *StockHandler) Publish(c *gin.Context) {
	if err := h.catalogService.PublishToday(); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to publish catalog")
		return
	}
	utils.Success(c, 200, "Catalog published", gin.H{
		"rows": h.catalogService.StockGrid(),
	})
}
