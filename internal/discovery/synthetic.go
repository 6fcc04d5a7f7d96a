package discovery

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/shubhsJadhav95/NeoCare/internal/geo"
	"github.com/shubhsJadhav95/NeoCare/internal/models"
)

// storeCatalog is the fixed set of pharmacy brands the generator draws from,
// in order. Never repeated within one call.
var storeCatalog = []string{
	"Apollo Pharmacy",
	"MedPlus Health Services",
	"Wellness Forever",
	"Netmeds",
	"PharmEasy Store",
	"HealthKart Pharmacy",
	"1mg Store",
	"Cure+ Pharmacy",
}

var streetNames = []string{
	"Main Road",
	"Market Street",
	"Gandhi Nagar",
	"Station Road",
	"MG Road",
}

// Generator manufactures plausible nearby stores when the real directory is
// unreachable or not configured. Its output keeps the discovery feature
// demonstrable; it must never be presented as verified real-world data.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from the clock.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource lets tests pin the randomness.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

func (g *Generator) Name() string { return "synthetic" }

// Simulated reports whether this source fabricates its stores.
func (g *Generator) Simulated() bool { return true }

// FetchNearby scatters 5-7 catalog stores uniformly within radiusKm of
// origin. Total: it never fails. The sampled distance is recorded directly
// rather than re-derived from the projected coordinate, so it stays within
// [0, radiusKm] exactly. The list comes back sorted by distance with the
// statuses seeded on the sorted order: closest store accepted, next pending,
// rest random.
func (g *Generator) FetchNearby(_ context.Context, origin geo.Coordinate, radiusKm float64) ([]models.MedicalStore, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := 5 + g.rng.Intn(3)
	if count > len(storeCatalog) {
		count = len(storeCatalog)
	}

	stores := make([]models.MedicalStore, 0, count)
	for i := 0; i < count; i++ {
		bearing := g.rng.Float64() * 2 * math.Pi
		distance := g.rng.Float64() * radiusKm

		stores = append(stores, models.MedicalStore{
			Name:       storeCatalog[i],
			Address:    fmt.Sprintf("Shop %d, %s, Near Location", 10+i, streetNames[i%len(streetNames)]),
			Phone:      fmt.Sprintf("+91 %d", 9000000000+int64(g.rng.Intn(99999999))),
			Coordinate: geo.Project(origin, bearing, distance),
			DistanceKm: distance,
			Rating:     4.0 + g.rng.Float64(),
		})
	}

	sort.SliceStable(stores, func(i, j int) bool {
		return stores[i].DistanceKm < stores[j].DistanceKm
	})

	for i := range stores {
		stores[i].ID = i + 1
		status := g.statusFor(i)
		stores[i].Status = status
		if status == models.StatusAccepted {
			stores[i].EstimatedTime = fmt.Sprintf("%d mins", 20+g.rng.Intn(30))
		}
	}
	return stores, nil
}

// statusFor seeds statuses positionally: the first store always accepts, the
// second stays pending, the rest are random.
func (g *Generator) statusFor(i int) models.StoreStatus {
	switch i {
	case 0:
		return models.StatusAccepted
	case 1:
		return models.StatusPending
	}
	statuses := []models.StoreStatus{models.StatusPending, models.StatusAccepted, models.StatusRejected}
	return statuses[g.rng.Intn(len(statuses))]
}
