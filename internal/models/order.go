package models

// OrderStatus enumerates the dispatch lifecycle of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusEnRoute   OrderStatus = "en_route"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// statusPriority orders the admin dispatch view: active orders first,
// terminal ones last, anything unrecognized at the very bottom.
var statusPriority = map[OrderStatus]int{
	StatusPending:   1,
	StatusPreparing: 2,
	StatusEnRoute:   3,
	StatusDelivered: 9,
	StatusCancelled: 10,
}

const unknownStatusPriority = 50

// Priority returns the dispatch sort rank of a status.
func (s OrderStatus) Priority() int {
	if p, ok := statusPriority[s]; ok {
		return p
	}
	return unknownStatusPriority
}

// Known reports whether the status is part of the canonical enum.
func (s OrderStatus) Known() bool {
	_, ok := statusPriority[s]
	return ok
}

// legacyStatus maps the status vocabulary of the original storefront onto
// the canonical enum. Values outside the table are preserved verbatim.
var legacyStatus = map[string]OrderStatus{
	"pendiente":  StatusPending,
	"preparando": StatusPreparing,
	"en_camino":  StatusEnRoute,
	"entregado":  StatusDelivered,
	"cancelado":  StatusCancelled,
}

// NormalizeStatus converts a stored status value to the canonical enum.
// Empty values default to pending.
func NormalizeStatus(raw string) OrderStatus {
	if raw == "" {
		return StatusPending
	}
	if mapped, ok := legacyStatus[raw]; ok {
		return mapped
	}
	return OrderStatus(raw)
}

// Customer holds the delivery details captured at checkout. The JSON field
// names are the ones the original storefront persisted.
type Customer struct {
	Phone      string `json:"telefono"`
	Business   string `json:"comercio,omitempty"`
	Address    string `json:"direccion"`
	Locality   string `json:"localidad"`
	TimeWindow string `json:"horario,omitempty"`
	TaxID      string `json:"cuit,omitempty"`
	Notes      string `json:"notas,omitempty"`
}

// OrderItem is a line snapshot taken at order time. It stays valid even if
// the product or its daily price changes later.
type OrderItem struct {
	ProductID      int     `json:"productId"`
	Name           string  `json:"name"`
	KilosPerCrate  float64 `json:"kilosPerCrate"`
	PricePerCrate  float64 `json:"pricePerCrate"`
	QuantityCrates int     `json:"quantityCrates"`
}

// Order is the canonical persisted order shape. Totals are computed once at
// creation and trusted as stored; they are never recomputed from items.
type Order struct {
	ID             string      `json:"id"`
	CreatedAt      string      `json:"createdAt"` // ISO-8601, authoritative ordering key
	Status         OrderStatus `json:"status"`
	Customer       Customer    `json:"customer"`
	Items          []OrderItem `json:"items"`
	TotalCrates    int         `json:"totalCrates"`
	TotalEstimated float64     `json:"totalEstimated"`
}
