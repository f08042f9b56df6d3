package models

// CustomerProfile caches the last-used delivery details of a repeat
// customer, keyed by normalized phone digits, for checkout autofill.
// Upserted on every confirmed order; never deleted.
type CustomerProfile struct {
	ID          string `json:"id"` // normalized phone digits
	Phone       string `json:"telefono"`
	Business    string `json:"comercio,omitempty"`
	Address     string `json:"direccion"`
	Locality    string `json:"localidad"`
	TimeWindow  string `json:"horario,omitempty"`
	TaxID       string `json:"cuit,omitempty"`
	LastOrderAt string `json:"ultimaCompraISO,omitempty"`
}
