package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shubhsJadhav95/NeoCare/internal/geo"
	"github.com/shubhsJadhav95/NeoCare/internal/models"
)

var origin = geo.Coordinate{Latitude: 12.97, Longitude: 77.59}

const nearbyBody = `{
  "results": [
    {
      "name": "Apollo Pharmacy",
      "vicinity": "MG Road",
      "rating": 4.6,
      "place_id": "p1",
      "geometry": {"location": {"lat": 12.98, "lng": 77.60}}
    },
    {
      "name": "Ghost Pharmacy",
      "place_id": "p2"
    },
    {
      "name": "Plain Pharmacy",
      "vicinity": "Station Road",
      "place_id": "p3",
      "geometry": {"location": {"lat": 12.95, "lng": 77.58}}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-key", 2*time.Second).WithBaseURL(server.URL)
	return client, server
}

func TestFetchNearbyHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") != "pharmacy" {
			t.Errorf("type filter = %q, want pharmacy", r.URL.Query().Get("type"))
		}
		if r.URL.Query().Get("radius") != "5000" {
			t.Errorf("radius = %q, want 5000 meters", r.URL.Query().Get("radius"))
		}
		w.Write([]byte(nearbyBody))
	})
	mux.HandleFunc("/details/json", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("place_id") {
		case "p1":
			w.Write([]byte(`{"result": {
				"formatted_address": "12 MG Road, Bengaluru",
				"formatted_phone_number": "080 1234 5678",
				"international_phone_number": "+91 80 1234 5678",
				"rating": 4.8
			}}`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	})

	client, _ := newTestClient(t, mux)
	stores, err := client.FetchNearby(context.Background(), origin, 5.0)
	if err != nil {
		t.Fatal(err)
	}

	// The candidate without a coordinate is dropped silently.
	if len(stores) != 2 {
		t.Fatalf("got %d stores, want 2", len(stores))
	}

	apollo := stores[0]
	if apollo.Name != "Apollo Pharmacy" {
		t.Fatalf("first store %q", apollo.Name)
	}
	if apollo.Phone != "+91 80 1234 5678" {
		t.Errorf("phone %q, want the international form preferred", apollo.Phone)
	}
	if apollo.Address != "12 MG Road, Bengaluru" {
		t.Errorf("address %q, want the formatted address", apollo.Address)
	}
	if apollo.Rating != 4.8 {
		t.Errorf("rating %v, want the refreshed 4.8", apollo.Rating)
	}

	// Details miss: the store survives on coarse nearby-search fields.
	plain := stores[1]
	if plain.Name != "Plain Pharmacy" || plain.Address != "Station Road" {
		t.Errorf("details miss dropped coarse fields: %+v", plain)
	}
	if plain.Rating != 4.2 {
		t.Errorf("rating %v, want the 4.2 default for unrated stores", plain.Rating)
	}

	for _, s := range stores {
		if s.Status != models.StatusPending {
			t.Errorf("store %q status %q, want pending", s.Name, s.Status)
		}
		if s.DistanceKm != 0 {
			t.Errorf("store %q carries distance %v; ranking is the orchestrator's job", s.Name, s.DistanceKm)
		}
	}
}

func TestFetchNearbyNoAPIKey(t *testing.T) {
	client := NewClient("", 2*time.Second)
	_, err := client.FetchNearby(context.Background(), origin, 5.0)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestFetchNearbyUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	_, err := client.FetchNearby(context.Background(), origin, 5.0)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestFetchNearbyUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient("test-key", 500*time.Millisecond).WithBaseURL(url)
	_, err := client.FetchNearby(context.Background(), origin, 5.0)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestFetchNearbyEmptyResults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	stores, err := client.FetchNearby(context.Background(), origin, 5.0)
	if err != nil {
		t.Fatalf("empty result set is not an error, got %v", err)
	}
	if len(stores) != 0 {
		t.Fatalf("got %d stores, want 0", len(stores))
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	for i := 0; i < 5; i++ {
		client.FetchNearby(context.Background(), origin, 5.0)
	}
	// By now the breaker has tripped; calls fail fast without hitting the
	// upstream, still as ErrUnavailable.
	_, err := client.FetchNearby(context.Background(), origin, 5.0)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable from open breaker", err)
	}
}
