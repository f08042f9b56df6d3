package models

// Product is a catalog entry: one crate format of one produce selection.
// Products are seeded once and immutable afterwards; daily availability and
// pricing live in DailyStock. JSON tags keep the original storefront's wire
// fields so exported browser-storage snapshots load directly.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"nombre"`
	Description   string  `json:"descripcion"`
	KilosPerCrate float64 `json:"kilosPorCajon"`
	ImageURL      string  `json:"imagenUrl,omitempty"`
	Active        bool    `json:"activo"`
}

// DailyStock is the per-day availability record for a product. At most one
// record exists per (date, product) pair; Date is a local calendar date in
// YYYY-MM-DD form.
type DailyStock struct {
	ProductID     int     `json:"productoId"`
	Date          string  `json:"fecha"`
	PricePerCrate float64 `json:"precioPorCajon"`
	StockCrates   int     `json:"stockCajones"`
	Published     bool    `json:"publicado"`
}

// Eligible reports whether the record may appear on the public storefront:
// explicitly published with real stock at a real price.
func (s DailyStock) Eligible() bool {
	return s.Published && s.StockCrates > 0 && s.PricePerCrate > 0
}

// CatalogEntry joins an active product with its eligible stock record for
// today. This is the unit the storefront renders and the cart holds.
type CatalogEntry struct {
	Product
	PricePerCrate float64 `json:"precioPorCajon"`
	StockCrates   int     `json:"stockCajones"`
}
