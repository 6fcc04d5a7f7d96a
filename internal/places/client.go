package places

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/shubhsJadhav95/NeoCare/internal/geo"
	"github.com/shubhsJadhav95/NeoCare/internal/metrics"
	"github.com/shubhsJadhav95/NeoCare/internal/models"
)

// ErrUnavailable means the Places directory could not serve this call at all:
// no API key, transport failure, non-success status, malformed body, or an
// open circuit breaker. The caller is expected to fall back, never to retry.
var ErrUnavailable = errors.New("places directory unavailable")

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client queries the Google Places API for pharmacies near a coordinate.
// It returns candidates with status pending and no distance; ranking and
// distance computation belong to the discovery orchestrator.
type Client struct {
	apiKey  string
	baseURL string
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a Places client. An empty apiKey is allowed; every fetch
// then fails with ErrUnavailable so the synthetic fallback takes over.
func NewClient(apiKey string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "google-places",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			state := float64(0)
			switch to {
			case gobreaker.StateOpen:
				state = 1
			case gobreaker.StateHalfOpen:
				state = 2
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(state)

			log.WithFields(log.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	})
	metrics.CircuitBreakerState.WithLabelValues("google-places").Set(0)

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    resty.New().SetTimeout(timeout).SetRetryCount(0),
		breaker: breaker,
	}
}

// WithBaseURL points the client at a different Places endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "google-places" }

// Simulated reports whether this source fabricates its stores.
func (c *Client) Simulated() bool { return false }

type nearbyResponse struct {
	Results []nearbyResult `json:"results"`
}

type nearbyResult struct {
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Rating   *float64 `json:"rating"`
	PlaceID  string   `json:"place_id"`
	Geometry *struct {
		Location *struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type detailsResponse struct {
	Result *struct {
		FormattedAddress         string   `json:"formatted_address"`
		FormattedPhoneNumber     string   `json:"formatted_phone_number"`
		InternationalPhoneNumber string   `json:"international_phone_number"`
		Rating                   *float64 `json:"rating"`
	} `json:"result"`
}

// candidate pairs a store with the opaque place ID needed for enrichment.
type candidate struct {
	store   models.MedicalStore
	placeID string
}

// FetchNearby runs a nearby search and a best-effort details enrichment per
// surviving candidate. It either returns the full candidate list or fails
// with ErrUnavailable; it never mixes partial results with an error.
func (c *Client) FetchNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]models.MedicalStore, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.nearbySearch(ctx, origin, radiusKm)
	})
	if err != nil {
		metrics.PlacesFailures.Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	candidates := result.([]candidate)
	stores := make([]models.MedicalStore, 0, len(candidates))
	for _, cand := range candidates {
		c.enrichWithDetails(ctx, &cand.store, cand.placeID)
		stores = append(stores, cand.store)
	}
	return stores, nil
}

func (c *Client) nearbySearch(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]candidate, error) {
	var body nearbyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":      c.apiKey,
			"location": fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude),
			"radius":   fmt.Sprintf("%d", int(math.Round(radiusKm*1000))),
			"type":     "pharmacy",
		}).
		SetResult(&body).
		Get(c.baseURL + "/nearbysearch/json")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("nearby search returned %s", resp.Status())
	}

	candidates := make([]candidate, 0, len(body.Results))
	id := 1
	for _, r := range body.Results {
		if r.Geometry == nil || r.Geometry.Location == nil ||
			r.Geometry.Location.Lat == nil || r.Geometry.Location.Lng == nil {
			// No resolvable coordinate, skip quietly.
			continue
		}
		name := r.Name
		if name == "" {
			name = "Pharmacy"
		}
		rating := 4.2
		if r.Rating != nil {
			rating = *r.Rating
		}
		candidates = append(candidates, candidate{
			store: models.MedicalStore{
				ID:      id,
				Name:    name,
				Address: r.Vicinity,
				Coordinate: geo.Coordinate{
					Latitude:  *r.Geometry.Location.Lat,
					Longitude: *r.Geometry.Location.Lng,
				},
				Rating: rating,
				Status: models.StatusPending,
			},
			placeID: r.PlaceID,
		})
		id++
	}
	return candidates, nil
}

// enrichWithDetails upgrades address, phone and rating from the details
// endpoint. A miss keeps the coarse nearby-search fields; it never fails the
// overall fetch.
func (c *Client) enrichWithDetails(ctx context.Context, store *models.MedicalStore, placeID string) {
	if placeID == "" {
		return
	}

	var body detailsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":      c.apiKey,
			"place_id": placeID,
			"fields":   "formatted_address,formatted_phone_number,opening_hours,photos,rating,user_ratings_total,international_phone_number",
		}).
		SetResult(&body).
		Get(c.baseURL + "/details/json")
	if err != nil || !resp.IsSuccess() || body.Result == nil {
		metrics.DetailsMisses.Inc()
		log.WithFields(log.Fields{
			"store":    store.Name,
			"place_id": placeID,
		}).Debug("Place details lookup missed, keeping coarse fields")
		return
	}

	result := body.Result
	phone := result.InternationalPhoneNumber
	if phone == "" {
		phone = result.FormattedPhoneNumber
	}
	if phone != "" {
		store.Phone = phone
	}
	if result.FormattedAddress != "" {
		store.Address = result.FormattedAddress
	}
	if result.Rating != nil {
		store.Rating = *result.Rating
	}
}
