package discovery

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/shubhsJadhav95/NeoCare/internal/geo"
	"github.com/shubhsJadhav95/NeoCare/internal/metrics"
	"github.com/shubhsJadhav95/NeoCare/internal/models"
)

// Source is one way of listing candidate stores near a coordinate. Sources
// are tried in order; the first success wins.
type Source interface {
	Name() string
	Simulated() bool
	FetchNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]models.MedicalStore, error)
}

// MapBuilder turns a ranked store list into an embed URL, or "" when no map
// credential is configured.
type MapBuilder interface {
	EmbedURL(origin geo.Coordinate, stores []models.MedicalStore) string
}

// ErrNoSource means every configured source failed. Unreachable as long as
// the synthetic generator terminates the chain.
var ErrNoSource = errors.New("no discovery source available")

// Service finds, ranks and status-tags medical stores near a requester.
type Service struct {
	sources []Source
	maps    MapBuilder
}

// NewService builds the orchestrator over an ordered fallback chain.
func NewService(maps MapBuilder, sources ...Source) *Service {
	return &Service{sources: sources, maps: maps}
}

// Discover lists stores within radiusKm of origin, sorted by ascending
// distance. Any source failure silently falls through to the next source;
// the caller never sees an upstream error. radiusKm must already be
// validated (> 0) by intake.
func (s *Service) Discover(ctx context.Context, origin geo.Coordinate, radiusKm float64) (models.DiscoveryResult, error) {
	var (
		stores []models.MedicalStore
		source Source
	)
	for _, src := range s.sources {
		fetched, err := src.FetchNearby(ctx, origin, radiusKm)
		if err != nil {
			log.WithFields(log.Fields{
				"source": src.Name(),
				"error":  err.Error(),
			}).Warn("Store source failed, falling back")
			continue
		}
		stores, source = fetched, src
		break
	}
	if source == nil {
		return models.DiscoveryResult{}, ErrNoSource
	}
	metrics.DiscoveriesTotal.WithLabelValues(source.Name()).Inc()

	// The live directory returns raw candidates; distance is ours to compute.
	// Synthetic stores already carry their sampled distance.
	if !source.Simulated() {
		for i := range stores {
			stores[i].DistanceKm = geo.DistanceKm(origin, stores[i].Coordinate)
		}
	}

	sort.SliceStable(stores, func(i, j int) bool {
		return stores[i].DistanceKm < stores[j].DistanceKm
	})

	// Stand-in for a real store-response negotiation: on the live path the
	// closest store is presented as accepted with a fixed ETA.
	if !source.Simulated() && len(stores) > 0 {
		stores[0].Status = models.StatusAccepted
		stores[0].EstimatedTime = "30 mins"
	}

	result := models.DiscoveryResult{
		Stores:    stores,
		Origin:    origin,
		RequestID: uuid.New().String(),
		Timestamp: time.Now().UTC(),
	}
	if s.maps != nil {
		result.MapURL = s.maps.EmbedURL(origin, stores)
	}

	log.WithFields(log.Fields{
		"source": source.Name(),
		"stores": len(stores),
		"radius": radiusKm,
	}).Info("Store discovery completed")

	return result, nil
}
