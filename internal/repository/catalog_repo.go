package repository

import (
	"time"

	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/storage"
)

// Storage keys inherited from the original storefront so exported
// browser-storage snapshots remain loadable.
const (
	keyProducts = "palteria_productos"
	keyStock    = "palteria_stock"
)

// CatalogRepository manages product definitions and per-day stock/price
// records. All "today" queries are scoped by the local wall-clock calendar
// date at read time.
type CatalogRepository struct {
	store *storage.Store
	now   func() time.Time
}

// NewCatalogRepository creates a CatalogRepository over the given store.
func NewCatalogRepository(store *storage.Store) *CatalogRepository {
	return &CatalogRepository{store: store, now: time.Now}
}

// Today returns the local calendar date as YYYY-MM-DD. Behavior crosses
// midnight boundaries exactly at local midnight.
func (r *CatalogRepository) Today() string {
	return r.now().Format("2006-01-02")
}

// ListProducts returns all stored products.
func (r *CatalogRepository) ListProducts() []models.Product {
	products := []models.Product{}
	r.store.Read(keyProducts, &products)
	return products
}

// EnsureSeedProducts populates the demo catalog when the product collection
// is empty. Idempotent: a no-op once any product exists.
func (r *CatalogRepository) EnsureSeedProducts() error {
	if len(r.ListProducts()) > 0 {
		return nil
	}
	seed := []models.Product{
		{ID: 1, Name: "Cajón 10kg – Hass Export", Description: "Selección premium.", KilosPerCrate: 10, Active: true},
		{ID: 2, Name: "Cajón 8kg – Hass Nacional", Description: "Ideal verdulería.", KilosPerCrate: 8, Active: true},
		{ID: 3, Name: "Cajón 18kg – Industria", Description: "Mix para industria.", KilosPerCrate: 18, Active: true},
	}
	return r.store.Write(keyProducts, seed)
}

func (r *CatalogRepository) readAllStock() []models.DailyStock {
	all := []models.DailyStock{}
	r.store.Read(keyStock, &all)
	return all
}

// StockForToday returns today's stock records, one per product at most.
func (r *CatalogRepository) StockForToday() []models.DailyStock {
	today := r.Today()
	out := []models.DailyStock{}
	for _, s := range r.readAllStock() {
		if s.Date == today {
			out = append(out, s)
		}
	}
	return out
}

// UpsertStock fully replaces (or appends) the record keyed by
// (today, productID). Records are never deleted; stale dates simply fall out
// of scope.
func (r *CatalogRepository) UpsertStock(productID, stockCrates int, pricePerCrate float64, published bool) error {
	today := r.Today()
	record := models.DailyStock{
		ProductID:     productID,
		Date:          today,
		StockCrates:   stockCrates,
		PricePerCrate: pricePerCrate,
		Published:     published,
	}

	all := r.readAllStock()
	replaced := false
	for i, s := range all {
		if s.Date == today && s.ProductID == productID {
			all[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, record)
	}
	return r.store.Write(keyStock, all)
}

// PublishToday is how the admin goes live for the day: every active
// product's row for today gets published recomputed as
// stockCrates > 0 && pricePerCrate > 0. Rows failing either condition are
// force-unpublished even if previously marked published; products without a
// row get one created (unpublished, zero values).
func (r *CatalogRepository) PublishToday() error {
	today := r.Today()
	all := r.readAllStock()

	hasToday := make(map[int]bool)
	for i, s := range all {
		if s.Date != today {
			continue
		}
		all[i].Published = s.StockCrates > 0 && s.PricePerCrate > 0
		hasToday[s.ProductID] = true
	}

	// Active products not yet loaded for today get an empty, unpublished row
	// so the admin grid shows them.
	for _, p := range r.ListProducts() {
		if p.Active && !hasToday[p.ID] {
			all = append(all, models.DailyStock{ProductID: p.ID, Date: today})
		}
	}
	return r.store.Write(keyStock, all)
}

// PublishedCatalogToday joins active products with their eligible stock
// record for today. Products without an eligible record are excluded
// entirely, never shown with zero values.
func (r *CatalogRepository) PublishedCatalogToday() []models.CatalogEntry {
	today := r.Today()

	byProduct := make(map[int]models.DailyStock)
	for _, s := range r.readAllStock() {
		if s.Date == today && s.Eligible() {
			byProduct[s.ProductID] = s
		}
	}

	entries := []models.CatalogEntry{}
	for _, p := range r.ListProducts() {
		if !p.Active {
			continue
		}
		s, ok := byProduct[p.ID]
		if !ok {
			continue
		}
		entries = append(entries, models.CatalogEntry{
			Product:       p,
			PricePerCrate: s.PricePerCrate,
			StockCrates:   s.StockCrates,
		})
	}
	return entries
}
