package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/palteria/palteria_api/internal/service"
	"github.com/palteria/palteria_api/internal/utils"
)

// CatalogHandler serves the public storefront catalog.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetStorefront returns today's published catalog and whether to show the
// first-visit hero banner.
func (h *CatalogHandler) GetStorefront(c *gin.Context) {
	utils.Success(c, 200, "Catalog retrieved successfully", h.catalogService.Storefront())
}

// MarkHeroSeen records that the hero banner was shown.
func (h *CatalogHandler) MarkHeroSeen(c *gin.Context) {
	if err := h.catalogService.MarkHeroSeen(); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to persist hero flag")
		return
	}
	utils.Success(c, 200, "Hero banner marked as seen", nil)
}
