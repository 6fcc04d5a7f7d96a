package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/shubhsJadhav95/NeoCare/config"
	"github.com/shubhsJadhav95/NeoCare/internal/discovery"
	"github.com/shubhsJadhav95/NeoCare/internal/geo"
	"github.com/shubhsJadhav95/NeoCare/internal/models"
	"github.com/shubhsJadhav95/NeoCare/internal/store"
)

// errMissingLocation is the only intake failure surfaced to callers; every
// failure past validation is absorbed by the discovery fallback chain.
var errMissingLocation = errors.New("Location coordinates are required")

type PharmaFastHandler struct {
	Discovery *discovery.Service
	Archive   *store.RequestArchive // nil when no mongo is configured
	Cfg       config.Config
}

// validateDeliveryRequest enforces the single intake invariant: a complete
// drop-off coordinate. Items, phone and address are accepted as-is.
func validateDeliveryRequest(req models.DeliveryRequest) (geo.Coordinate, error) {
	origin, ok := req.Delivery.Location()
	if !ok {
		return geo.Coordinate{}, errMissingLocation
	}
	return origin, nil
}

// SubmitDeliveryRequest accepts a delivery order, discovers nearby stores and
// returns them together with a map embed URL.
func (h *PharmaFastHandler) SubmitDeliveryRequest(c *gin.Context) {
	var req models.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	origin, err := validateDeliveryRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	log.WithFields(log.Fields{
		"customer": req.Delivery.Name,
		"phone":    req.Delivery.Phone,
		"lat":      origin.Latitude,
		"lng":      origin.Longitude,
		"items":    len(req.Items),
		"total":    req.Total,
	}).Info("Delivery request received")

	result, err := h.Discovery.Discover(c.Request.Context(), origin, h.Cfg.Discovery.DefaultRadiusKm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process request: " + err.Error()})
		return
	}

	h.archive(c, req, result)

	var mapURL interface{}
	if result.MapURL != "" {
		mapURL = result.MapURL
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stores":  result.Stores,
		"mapUrl":  mapURL,
		"userLocation": gin.H{
			"latitude":  origin.Latitude,
			"longitude": origin.Longitude,
			"address":   req.Delivery.Address,
		},
		"requestId": result.RequestID,
		"timestamp": result.Timestamp,
	})
}

// archive persists the request best-effort. A write failure is logged and
// never fails the call.
func (h *PharmaFastHandler) archive(c *gin.Context, req models.DeliveryRequest, result models.DiscoveryResult) {
	if h.Archive == nil {
		return
	}
	record := store.DeliveryRecord{
		RequestID: result.RequestID,
		Request:   req,
		Result:    result,
	}
	if err := h.Archive.Save(c.Request.Context(), record); err != nil {
		log.WithFields(log.Fields{
			"requestId": result.RequestID,
			"error":     err.Error(),
		}).Error("Failed to archive delivery request")
	}
}

// GetNearbyStores lists stores around an explicit coordinate.
func (h *PharmaFastHandler) GetNearbyStores(c *gin.Context) {
	latitude, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	longitude, errLng := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errMissingLocation.Error()})
		return
	}

	radiusKm := h.Cfg.Discovery.DefaultRadiusKm
	if raw := c.Query("radiusKm"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "radiusKm must be a positive number"})
			return
		}
		radiusKm = parsed
	}

	origin := geo.Coordinate{Latitude: latitude, Longitude: longitude}
	log.WithFields(log.Fields{
		"lat":    latitude,
		"lng":    longitude,
		"radius": radiusKm,
	}).Info("Finding nearby stores")

	result, err := h.Discovery.Discover(c.Request.Context(), origin, radiusKm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stores":  result.Stores,
		"count":   len(result.Stores),
	})
}

// GetDeliveryRequest returns an archived delivery request by its request ID.
func (h *PharmaFastHandler) GetDeliveryRequest(c *gin.Context) {
	if h.Archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Request archive is not configured"})
		return
	}

	record, err := h.Archive.FindByRequestID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Delivery request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load delivery request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": record})
}
