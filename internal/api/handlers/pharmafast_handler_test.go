package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shubhsJadhav95/NeoCare/config"
	"github.com/shubhsJadhav95/NeoCare/internal/discovery"
	"github.com/shubhsJadhav95/NeoCare/internal/maps"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	generator := discovery.NewGeneratorWithSource(rand.NewSource(11))
	svc := discovery.NewService(maps.NewBuilder(""), generator)

	handler := &PharmaFastHandler{
		Discovery: svc,
		Cfg: config.Config{
			Discovery: config.DiscoveryConfig{DefaultRadiusKm: 5.0, TimeoutSeconds: 3},
		},
	}

	router := gin.New()
	router.POST("/api/pharmafast/submit-request", handler.SubmitDeliveryRequest)
	router.GET("/api/pharmafast/nearby-stores", handler.GetNearbyStores)
	router.GET("/api/pharmafast/requests/:id", handler.GetDeliveryRequest)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return w, decoded
}

func TestSubmitRequestMissingLocation(t *testing.T) {
	router := newTestRouter()

	body := `{
		"items": [{"id": 1, "name": "Paracetamol", "price": 20, "quantity": 2}],
		"total": 40,
		"delivery": {"name": "Asha", "phone": "9876543210", "address": "MG Road"}
	}`
	w, decoded := doJSON(t, router, http.MethodPost, "/api/pharmafast/submit-request", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if decoded["success"] != false {
		t.Errorf("success = %v, want false", decoded["success"])
	}
	if decoded["error"] != "Location coordinates are required" {
		t.Errorf("error = %q", decoded["error"])
	}
}

func TestSubmitRequestHappyPath(t *testing.T) {
	router := newTestRouter()

	body := `{
		"items": [{"id": 1, "name": "Paracetamol", "price": 20, "quantity": 2}],
		"total": 40,
		"delivery": {
			"name": "Asha", "phone": "9876543210", "address": "MG Road",
			"latitude": 12.97, "longitude": 77.59
		}
	}`
	w, decoded := doJSON(t, router, http.MethodPost, "/api/pharmafast/submit-request", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if decoded["success"] != true {
		t.Fatalf("success = %v", decoded["success"])
	}
	stores, ok := decoded["stores"].([]interface{})
	if !ok || len(stores) < 5 || len(stores) > 7 {
		t.Fatalf("stores = %v", decoded["stores"])
	}
	if decoded["mapUrl"] != nil {
		t.Errorf("mapUrl = %v without a Maps key, want null", decoded["mapUrl"])
	}
	if id, _ := decoded["requestId"].(string); id == "" {
		t.Error("requestId missing")
	}
	loc, _ := decoded["userLocation"].(map[string]interface{})
	if loc["latitude"] != 12.97 || loc["longitude"] != 77.59 || loc["address"] != "MG Road" {
		t.Errorf("userLocation = %v", loc)
	}

	first, _ := stores[0].(map[string]interface{})
	if first["status"] != "accepted" {
		t.Errorf("first store status %v, want accepted", first["status"])
	}
	second, _ := stores[1].(map[string]interface{})
	if second["status"] != "pending" {
		t.Errorf("second store status %v, want pending", second["status"])
	}
}

func TestNearbyStoresMissingCoordinates(t *testing.T) {
	router := newTestRouter()
	w, _ := doJSON(t, router, http.MethodGet, "/api/pharmafast/nearby-stores?latitude=12.97", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestNearbyStoresHappyPath(t *testing.T) {
	router := newTestRouter()
	w, decoded := doJSON(t, router, http.MethodGet,
		"/api/pharmafast/nearby-stores?latitude=12.97&longitude=77.59&radiusKm=4.5", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	stores, _ := decoded["stores"].([]interface{})
	if count, _ := decoded["count"].(float64); int(count) != len(stores) {
		t.Errorf("count %v != stores %d", decoded["count"], len(stores))
	}
	for _, raw := range stores {
		s, _ := raw.(map[string]interface{})
		if d, _ := s["distance"].(float64); d > 4.5 {
			t.Errorf("store %v beyond requested radius", s["name"])
		}
	}
}

func TestNearbyStoresRejectsNonPositiveRadius(t *testing.T) {
	router := newTestRouter()
	w, _ := doJSON(t, router, http.MethodGet,
		"/api/pharmafast/nearby-stores?latitude=12.97&longitude=77.59&radiusKm=0", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestGetDeliveryRequestWithoutArchive(t *testing.T) {
	router := newTestRouter()
	w, _ := doJSON(t, router, http.MethodGet, "/api/pharmafast/requests/some-id", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", w.Code)
	}
}
