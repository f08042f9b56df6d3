package service

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/repository"
	"github.com/palteria/palteria_api/internal/utils"
)

// Admin order list views.
const (
	ViewRecent   = "recent"   // most recent first
	ViewPriority = "priority" // dispatch board: active first, FIFO within status
)

// OrderService serves the admin order board.
type OrderService struct {
	orders *repository.OrderRepository
}

// NewOrderService creates an OrderService.
func NewOrderService(orders *repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// TodayOrders lists today's orders in the requested view, optionally
// narrowed by status and free-text search. An empty or unknown view falls
// back to recent.
func (s *OrderService) TodayOrders(view, status, search string) ([]models.Order, error) {
	if status != "" && !models.OrderStatus(status).Known() {
		return nil, utils.ErrInvalidStatus
	}
	if view == ViewPriority {
		return s.orders.TodayDispatch(models.OrderStatus(status), search), nil
	}
	if status != "" || search != "" {
		// The recent view supports the same read-time filters, sorted by time.
		orders := s.orders.TodayDispatch(models.OrderStatus(status), search)
		return sortRecent(orders), nil
	}
	return s.orders.TodayOrders(), nil
}

func sortRecent(orders []models.Order) []models.Order {
	// TodayDispatch already filtered; re-rank by createdAt descending.
	out := make([]models.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// SetStatus moves an order to a new lifecycle state. Unknown status values
// are rejected; unknown order ids are a silent no-op.
func (s *OrderService) SetStatus(id, status string) error {
	st := models.OrderStatus(status)
	if !st.Known() {
		return utils.ErrInvalidStatus
	}
	if err := s.orders.SetStatus(id, st); err != nil {
		return err
	}
	log.Info().Str("order_id", id).Str("status", status).Msg("order status updated")
	return nil
}

// Delete removes an order from the collection.
func (s *OrderService) Delete(id string) error {
	if err := s.orders.Delete(id); err != nil {
		return err
	}
	log.Info().Str("order_id", id).Msg("order deleted")
	return nil
}
