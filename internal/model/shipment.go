package model

import "time"

// Shipment represents a tracking-coded grouping of items dispatched together.
// The item set is derived: items point at the shipment, never the reverse.
type Shipment struct {
	ID           string    `json:"id"`
	TrackingCode string    `json:"tracking_code"`
	CreatedAt    time.Time `json:"created_at"`

	// Derived from items whose shipment_id matches (not always populated).
	Items []Item `json:"items"`
}
