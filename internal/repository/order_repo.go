package repository

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/storage"
)

const keyOrders = "palteria_pedidos"

// OrderRepository persists finalized orders in canonical shape. Every read
// runs the normalization pipeline; if any legacy-shaped record is
// encountered, the whole collection is rewritten canonically (a one-time,
// idempotent self-migration).
type OrderRepository struct {
	store *storage.Store
	now   func() time.Time
}

// NewOrderRepository creates an OrderRepository over the given store.
func NewOrderRepository(store *storage.Store) *OrderRepository {
	return &OrderRepository{store: store, now: time.Now}
}

// Today returns the local calendar date as YYYY-MM-DD.
func (r *OrderRepository) Today() string {
	return r.now().Format("2006-01-02")
}

func (r *OrderRepository) nowISO() string {
	return r.now().UTC().Format(time.RFC3339)
}

// readNormalized loads the stored collection and converges every record on
// the canonical shape. Unrecognizable records are filtered out.
func (r *OrderRepository) readNormalized() []models.Order {
	raw := []json.RawMessage{}
	r.store.Read(keyOrders, &raw)

	orders := make([]models.Order, 0, len(raw))
	hadLegacy := false
	for _, rec := range raw {
		order, ok, wasLegacy := decodeOrder(rec, r.nowISO)
		if !ok {
			continue
		}
		orders = append(orders, order)
		hadLegacy = hadLegacy || wasLegacy
	}

	if hadLegacy {
		// Self-migration: rewrite the collection canonically so the legacy
		// path never fires again. Best-effort; the next read retries.
		if err := r.store.Write(keyOrders, orders); err != nil {
			log.Error().Err(err).Msg("order collection migration rewrite failed")
		} else {
			log.Info().Int("orders", len(orders)).Msg("migrated legacy order records to canonical shape")
		}
	}
	return orders
}

// Create appends an order to the persisted collection.
func (r *OrderRepository) Create(order models.Order) error {
	all := r.readNormalized()
	all = append(all, order)
	return r.store.Write(keyOrders, all)
}

// todayFiltered returns today's orders, optionally narrowed by status and a
// case-insensitive substring search across id/phone/business/address/locality.
func (r *OrderRepository) todayFiltered(status models.OrderStatus, search string) []models.Order {
	today := r.Today()
	needle := strings.ToLower(strings.TrimSpace(search))

	out := []models.Order{}
	for _, o := range r.readNormalized() {
		if !strings.HasPrefix(o.CreatedAt, today) {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		if needle != "" && !matchesSearch(o, needle) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesSearch(o models.Order, needle string) bool {
	for _, field := range []string{o.ID, o.Customer.Phone, o.Customer.Business, o.Customer.Address, o.Customer.Locality} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// TodayOrders returns today's orders sorted most recent first.
func (r *OrderRepository) TodayOrders() []models.Order {
	orders := r.todayFiltered("", "")
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt > orders[j].CreatedAt
	})
	return orders
}

// TodayDispatch returns today's orders for the dispatch board: active
// statuses surface first (status priority ascending), oldest first within
// the same status so dispatch stays first-in-first-out.
func (r *OrderRepository) TodayDispatch(status models.OrderStatus, search string) []models.Order {
	orders := r.todayFiltered(status, search)
	sort.SliceStable(orders, func(i, j int) bool {
		pi, pj := orders[i].Status.Priority(), orders[j].Status.Priority()
		if pi != pj {
			return pi < pj
		}
		return orders[i].CreatedAt < orders[j].CreatedAt
	})
	return orders
}

// SetStatus replaces the status of the order with the given id. Unknown ids
// are a silent no-op, not an error; the stored collection is left untouched.
func (r *OrderRepository) SetStatus(id string, status models.OrderStatus) error {
	all := r.readNormalized()
	for i, o := range all {
		if o.ID == id {
			all[i].Status = status
			return r.store.Write(keyOrders, all)
		}
	}
	return nil
}

// Delete removes the order with the given id. Unknown ids are a no-op.
func (r *OrderRepository) Delete(id string) error {
	all := r.readNormalized()
	kept := all[:0]
	for _, o := range all {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return r.store.Write(keyOrders, kept)
}
