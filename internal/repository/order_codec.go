package repository

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/palteria/palteria_api/internal/models"
)

// Two order shapes coexist in storage: the canonical nested shape this
// service writes, and the flat shape the first storefront release persisted.
// decodeOrder is the discriminated-union step that converges both on
// models.Order: canonical parsing is attempted first, then the legacy
// fallback; records matching neither shape are dropped.

// flexString coerces stored values to strings: numbers are formatted,
// anything else collapses to "".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// flexFloat coerces stored values to float64: numeric strings are parsed,
// anything unparseable defaults to 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			*f = flexFloat(parsed)
			return nil
		}
	}
	*f = 0
	return nil
}

// flexInt is flexFloat truncated to an int.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var v flexFloat
	_ = v.UnmarshalJSON(b)
	*f = flexInt(v)
	return nil
}

type flexCustomer struct {
	Phone      flexString `json:"telefono"`
	Business   flexString `json:"comercio"`
	Address    flexString `json:"direccion"`
	Locality   flexString `json:"localidad"`
	TimeWindow flexString `json:"horario"`
	TaxID      flexString `json:"cuit"`
	Notes      flexString `json:"notas"`
}

func (c flexCustomer) toCustomer() models.Customer {
	return models.Customer{
		Phone:      string(c.Phone),
		Business:   string(c.Business),
		Address:    string(c.Address),
		Locality:   string(c.Locality),
		TimeWindow: string(c.TimeWindow),
		TaxID:      string(c.TaxID),
		Notes:      string(c.Notes),
	}
}

type canonicalItem struct {
	ProductID      flexInt    `json:"productId"`
	Name           flexString `json:"name"`
	KilosPerCrate  flexFloat  `json:"kilosPerCrate"`
	PricePerCrate  flexFloat  `json:"pricePerCrate"`
	QuantityCrates flexInt    `json:"quantityCrates"`
}

type canonicalOrder struct {
	ID             flexString      `json:"id"`
	CreatedAt      flexString      `json:"createdAt"`
	Status         flexString      `json:"status"`
	Customer       *flexCustomer   `json:"customer"`
	Items          json.RawMessage `json:"items"`
	TotalCrates    flexInt         `json:"totalCrates"`
	TotalEstimated flexFloat       `json:"totalEstimated"`
}

type legacyItem struct {
	ProductID      flexInt    `json:"productoId"`
	Name           flexString `json:"nombre"`
	KilosPerCrate  flexFloat  `json:"kilosPorCajon"`
	PricePerCrate  flexFloat  `json:"precioPorCajon"`
	QuantityCrates flexInt    `json:"cantidadCajones"`
}

type legacyOrder struct {
	ID             flexString      `json:"id"`
	CreatedAt      flexString      `json:"creadoISO"`
	Status         flexString      `json:"estado"`
	Phone          flexString      `json:"clienteTelefono"`
	Business       flexString      `json:"comercio"`
	Address        flexString      `json:"direccion"`
	Locality       flexString      `json:"localidad"`
	TimeWindow     flexString      `json:"horario"`
	TaxID          flexString      `json:"cuit"`
	Notes          flexString      `json:"notas"`
	Items          json.RawMessage `json:"items"`
	TotalCrates    flexInt         `json:"totalCajones"`
	TotalEstimated flexFloat       `json:"totalEstimado"`
}

// isJSONArray reports whether raw starts a JSON array.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// decodeOrder normalizes one stored record. ok is false for records that
// match neither shape (they are filtered out, not errors); wasLegacy reports
// whether the legacy fallback fired, which triggers the self-migrating
// rewrite of the whole collection.
func decodeOrder(raw json.RawMessage, nowISO func() string) (order models.Order, ok bool, wasLegacy bool) {
	var c canonicalOrder
	if err := json.Unmarshal(raw, &c); err != nil {
		return models.Order{}, false, false
	}

	if c.Customer != nil && isJSONArray(c.Items) {
		var items []canonicalItem
		_ = json.Unmarshal(c.Items, &items)
		order = models.Order{
			ID:             string(c.ID),
			CreatedAt:      string(c.CreatedAt),
			Status:         models.NormalizeStatus(string(c.Status)),
			Customer:       c.Customer.toCustomer(),
			Items:          canonicalItems(items),
			TotalCrates:    int(c.TotalCrates),
			TotalEstimated: float64(c.TotalEstimated),
		}
		if order.CreatedAt == "" {
			order.CreatedAt = nowISO()
		}
		return order, true, false
	}

	var l legacyOrder
	if err := json.Unmarshal(raw, &l); err != nil {
		return models.Order{}, false, false
	}
	// Legacy heuristic, preserved as-is: no nested customer, and at least one
	// of phone/address/locality at the top level. Anything else is dropped.
	if c.Customer != nil || (l.Phone == "" && l.Address == "" && l.Locality == "") {
		return models.Order{}, false, false
	}

	var lItems []legacyItem
	if isJSONArray(l.Items) {
		_ = json.Unmarshal(l.Items, &lItems)
	}

	order = models.Order{
		ID:        string(l.ID),
		CreatedAt: string(l.CreatedAt),
		Status:    models.NormalizeStatus(string(l.Status)),
		Customer: models.Customer{
			Phone:      string(l.Phone),
			Business:   string(l.Business),
			Address:    string(l.Address),
			Locality:   string(l.Locality),
			TimeWindow: string(l.TimeWindow),
			TaxID:      string(l.TaxID),
			Notes:      string(l.Notes),
		},
		Items:          legacyItems(lItems),
		TotalCrates:    int(l.TotalCrates),
		TotalEstimated: float64(l.TotalEstimated),
	}
	if order.CreatedAt == "" {
		order.CreatedAt = nowISO()
	}
	return order, true, true
}

func canonicalItems(items []canonicalItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			ProductID:      int(it.ProductID),
			Name:           string(it.Name),
			KilosPerCrate:  float64(it.KilosPerCrate),
			PricePerCrate:  float64(it.PricePerCrate),
			QuantityCrates: int(it.QuantityCrates),
		})
	}
	return out
}

func legacyItems(items []legacyItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			ProductID:      int(it.ProductID),
			Name:           string(it.Name),
			KilosPerCrate:  float64(it.KilosPerCrate),
			PricePerCrate:  float64(it.PricePerCrate),
			QuantityCrates: int(it.QuantityCrates),
		})
	}
	return out
}
