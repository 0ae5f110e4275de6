package model

import "time"

// Item represents a single serialized garment unit. Every physical unit has
// its own record; the serial number is the payload printed into its QR code.
type Item struct {
	ID           string    `json:"id"`
	SerialNumber string    `json:"serial_number"`
	Size         string    `json:"size"`
	Type         string    `json:"type"`
	Color        string    `json:"color,omitempty"`
	Status       Status    `json:"status"`
	ShipmentID   *string   `json:"shipment_id,omitempty"`
	ImageMime    string    `json:"image_mime,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined field (not always populated).
	TrackingCode string `json:"tracking_code,omitempty"`
}

// Status is the current disposition of an item. Presence of a shipment id is
// the durable "ever shipped" fact; status alone does not encode it once an
// item is later marked damaged.
type Status string

// Item statuses.
const (
	StatusInStock  Status = "in_stock"
	StatusShipped  Status = "shipped"
	StatusAccepted Status = "accepted"
	StatusDamaged  Status = "damaged"
)

// ValidStatus reports whether s is one of the four defined statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInStock, StatusShipped, StatusAccepted, StatusDamaged:
		return true
	}
	return false
}

// Garment sizes.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// Garment types.
var Types = []string{"buttoned", "closed", "hooded"}

// ValidSize reports whether size is a known garment size.
func ValidSize(size string) bool {
	for _, s := range Sizes {
		if size == s {
			return true
		}
	}
	return false
}

// ValidType reports whether typ is a known garment type.
func ValidType(typ string) bool {
	for _, t := range Types {
		if typ == t {
			return true
		}
	}
	return false
}
