package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/palteria/palteria_api/internal/storage"
	"github.com/palteria/palteria_api/internal/utils"
)

// HealthHandler reports service and storage backend health.
type HealthHandler struct {
	store *storage.Store
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(store *storage.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// GetHealth pings the storage backend.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	if err := h.store.Ping(); err != nil {
		utils.Error(c, 503, "STORAGE_UNAVAILABLE", "Storage backend unreachable")
		return
	}
	utils.Success(c, 200, "OK", gin.H{"status": "healthy"})
}
