package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shubhsJadhav95/NeoCare/config"
	"github.com/shubhsJadhav95/NeoCare/internal/api/handlers"
	"github.com/shubhsJadhav95/NeoCare/internal/api/middleware"
	"github.com/shubhsJadhav95/NeoCare/internal/discovery"
	"github.com/shubhsJadhav95/NeoCare/internal/metrics"
	"github.com/shubhsJadhav95/NeoCare/internal/store"
)

// SetupRouter wires the handlers onto the router. archive may be nil when no
// mongo is configured; the handlers degrade accordingly.
func SetupRouter(
	discoveryService *discovery.Service,
	archive *store.RequestArchive,
	cfg config.Config,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.RequestID())
	router.Use(metrics.PrometheusMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pharmaFastHandler := &handlers.PharmaFastHandler{
		Discovery: discoveryService,
		Archive:   archive,
		Cfg:       cfg,
	}

	pharmafast := router.Group("/api/pharmafast")
	{
		pharmafast.POST("/submit-request", pharmaFastHandler.SubmitDeliveryRequest)
		pharmafast.GET("/nearby-stores", pharmaFastHandler.GetNearbyStores)
		pharmafast.GET("/requests/:id", pharmaFastHandler.GetDeliveryRequest)
	}

	return router
}
