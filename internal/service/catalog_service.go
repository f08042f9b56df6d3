package service

import (
	"github.com/rs/zerolog/log"

	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/repository"
)

// StorefrontView is what the public catalog page renders.
type StorefrontView struct {
	Date     string                `json:"date"`
	Entries  []models.CatalogEntry `json:"entries"`
	ShowHero bool                  `json:"showHero"`
}

// StockRow is one line of the admin stock grid: a product joined with its
// record for today, zero-valued when the day has not been loaded yet.
type StockRow struct {
	models.Product
	PricePerCrate float64 `json:"precioPorCajon"`
	StockCrates   int     `json:"stockCajones"`
	Published     bool    `json:"publicado"`
}

// CatalogService serves the storefront and admin stock views.
type CatalogService struct {
	catalog *repository.CatalogRepository
	prefs   *repository.PrefsRepository
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(catalog *repository.CatalogRepository, prefs *repository.PrefsRepository) *CatalogService {
	return &CatalogService{catalog: catalog, prefs: prefs}
}

// Storefront returns today's published catalog. The big hero banner shows
// only on a first visit and only when there is something to sell.
func (s *CatalogService) Storefront() StorefrontView {
	entries := s.catalog.PublishedCatalogToday()
	return StorefrontView{
		Date:     s.catalog.Today(),
		Entries:  entries,
		ShowHero: !s.prefs.HeroSeen() && len(entries) > 0,
	}
}

// MarkHeroSeen records that the hero banner was shown.
func (s *CatalogService) MarkHeroSeen() error {
	return s.prefs.MarkHeroSeen()
}

// EntryForProduct resolves a published catalog entry by product id, used
// when adding to the cart so the cart snapshots today's price.
func (s *CatalogService) EntryForProduct(productID int) (models.CatalogEntry, bool) {
	for _, e := range s.catalog.PublishedCatalogToday() {
		if e.ID == productID {
			return e, true
		}
	}
	return models.CatalogEntry{}, false
}

// ListProducts returns all products, inactive ones included (admin view).
func (s *CatalogService) ListProducts() []models.Product {
	return s.catalog.ListProducts()
}

// StockGrid joins every active product with its record for today for the
// admin stock page.
func (s *CatalogService) StockGrid() []StockRow {
	byProduct := make(map[int]models.DailyStock)
	for _, rec := range s.catalog.StockForToday() {
		byProduct[rec.ProductID] = rec
	}

	rows := []StockRow{}
	for _, p := range s.catalog.ListProducts() {
		if !p.Active {
			continue
		}
		row := StockRow{Product: p}
		if rec, ok := byProduct[p.ID]; ok {
			row.PricePerCrate = rec.PricePerCrate
			row.StockCrates = rec.StockCrates
			row.Published = rec.Published
		}
		rows = append(rows, row)
	}
	return rows
}

// UpsertStock replaces today's record for the product.
func (s *CatalogService) UpsertStock(productID, stockCrates int, pricePerCrate float64, published bool) error {
	return s.catalog.UpsertStock(productID, stockCrates, pricePerCrate, published)
}

// PublishToday goes live for the day, force-unpublishing rows without stock
// or price.
func (s *CatalogService) PublishToday() error {
	if err := s.catalog.PublishToday(); err != nil {
		return err
	}
	log.Info().Str("date", s.catalog.Today()).Msg("catalog published for today")
	return nil
}
