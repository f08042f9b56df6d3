package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/palteria/palteria_api/internal/service"
	"github.com/palteria/palteria_api/internal/utils"
)

// OrderAdminHandler exposes the admin dispatch board.
type OrderAdminHandler struct {
	orderService *service.OrderService
}

// NewOrderAdminHandler constructs an OrderAdminHandler.
func NewOrderAdminHandler(orderService *service.OrderService) *OrderAdminHandler {
	return &OrderAdminHandler{orderService: orderService}
}

// ListToday returns today's orders. Query params: view=recent|priority,
// status=<enum value>, search=<free text>.
func (h *OrderAdminHandler) ListToday(c *gin.Context) {
	orders, err := h.orderService.TodayOrders(c.Query("view"), c.Query("status"), c.Query("search"))
	if err != nil {
		if errors.Is(err, utils.ErrInvalidStatus) {
			utils.Error(c, 400, "INVALID_STATUS", "Unknown order status")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", gin.H{
		"orders": orders,
	})
}

// SetStatus moves an order to a new lifecycle state. Updating an unknown
// order id is a no-op, mirrored as success.
func (h *OrderAdminHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.orderService.SetStatus(c.Param("id"), req.Status); err != nil {
		if errors.Is(err, utils.ErrInvalidStatus) {
			utils.Error(c, 400, "INVALID_STATUS", "Unknown order status")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update order")
		return
	}
	utils.Success(c, 200, "Order status updated", nil)
}

// Delete removes an order.
func (h *OrderAdminHandler) Delete(c *gin.Context) {
	if err := h.orderService.Delete(c.Param("id")); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete order")
		return
	}
	utils.Success(c, 200, "Order deleted", nil)
}
