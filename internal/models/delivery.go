package models

import "github.com/shubhsJadhav95/NeoCare/internal/geo"

// MedicineItem is one line of a delivery request. Comes straight from the
// storefront cart; no cross-item invariants.
type MedicineItem struct {
	ID       int     `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Form     string  `bson:"form,omitempty" json:"form,omitempty"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Details  string  `bson:"details,omitempty" json:"details,omitempty"`
	Tag      string  `bson:"tag,omitempty" json:"tag,omitempty"`
}

// DeliveryInfo carries the drop-off details. Latitude/Longitude are pointers
// so that intake can tell "absent" apart from zero.
type DeliveryInfo struct {
	Name      string   `bson:"name" json:"name"`
	Phone     string   `bson:"phone" json:"phone"`
	Address   string   `bson:"address" json:"address"`
	Pincode   string   `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Landmark  string   `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Latitude  *float64 `bson:"latitude" json:"latitude"`
	Longitude *float64 `bson:"longitude" json:"longitude"`
}

// Location returns the drop-off coordinate, or false when either component
// is missing. Discovery must not proceed without it.
func (d DeliveryInfo) Location() (geo.Coordinate, bool) {
	if d.Latitude == nil || d.Longitude == nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Latitude: *d.Latitude, Longitude: *d.Longitude}, true
}

// DeliveryRequest is the inbound medicine delivery order. Immutable once it
// passes intake validation; consumed by a single discovery call.
type DeliveryRequest struct {
	Items             []MedicineItem `bson:"items" json:"items"`
	Total             float64        `bson:"total" json:"total"`
	Delivery          DeliveryInfo   `bson:"delivery" json:"delivery"`
	PrescriptionImage string         `bson:"prescriptionImage,omitempty" json:"prescriptionImage,omitempty"`
	Status            string         `bson:"status,omitempty" json:"status,omitempty"`
	RequestedAt       string         `bson:"requestedAt,omitempty" json:"requestedAt,omitempty"`
}
