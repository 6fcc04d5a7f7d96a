package maps

import (
	"fmt"
	"strings"

	"github.com/shubhsJadhav95/NeoCare/internal/geo"
	"github.com/shubhsJadhav95/NeoCare/internal/models"
)

const embedZoom = 14

// Builder constructs Google Maps embed URLs with one marker per store,
// colored by fulfillment status. Pure string formatting; the client renders
// the reference.
type Builder struct {
	apiKey string
}

func NewBuilder(apiKey string) *Builder {
	return &Builder{apiKey: apiKey}
}

// EmbedURL returns a view URL centered on origin with a red "You" marker
// followed by one marker per store in input order, or "" when no API key is
// configured.
func (b *Builder) EmbedURL(origin geo.Coordinate, stores []models.MedicalStore) string {
	if b.apiKey == "" {
		return ""
	}

	var markers strings.Builder
	fmt.Fprintf(&markers, "markers=color:red%%7Clabel:You%%7C%f,%f", origin.Latitude, origin.Longitude)

	for _, store := range stores {
		fmt.Fprintf(&markers, "&markers=color:%s%%7C%f,%f",
			markerColor(store.Status), store.Latitude, store.Longitude)
	}

	return fmt.Sprintf(
		"https://www.google.com/maps/embed/v1/view?key=%s&center=%f,%f&zoom=%d&%s",
		b.apiKey, origin.Latitude, origin.Longitude, embedZoom, markers.String(),
	)
}

func markerColor(status models.StoreStatus) string {
	switch status {
	case models.StatusAccepted:
		return "green"
	case models.StatusPending:
		return "yellow"
	default:
		return "gray"
	}
}
