package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/shubhsJadhav95/NeoCare/config"
	"github.com/shubhsJadhav95/NeoCare/internal/api/routes"
	"github.com/shubhsJadhav95/NeoCare/internal/database"
	"github.com/shubhsJadhav95/NeoCare/internal/discovery"
	"github.com/shubhsJadhav95/NeoCare/internal/maps"
	"github.com/shubhsJadhav95/NeoCare/internal/places"
	"github.com/shubhsJadhav95/NeoCare/internal/store"
)

func main() {
	// .env is optional; config falls back to real env vars and config.yaml.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	log.SetFormatter(&log.JSONFormatter{})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	// The request archive is optional: without a mongo URI the service still
	// serves discovery, it just keeps no history.
	var archive *store.RequestArchive
	if cfg.Mongo.URI != "" {
		db, err := database.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.DBName)
		if err != nil {
			log.Fatalf("Could not connect to MongoDB: %v", err)
		}
		if err := database.EnsureIndexes(context.Background(), db); err != nil {
			log.Fatalf("Could not create MongoDB indexes: %v", err)
		}
		archive = store.NewRequestArchive(db)
	} else {
		log.Warn("No MONGO_URI configured, delivery request archive disabled")
	}

	timeout := time.Duration(cfg.Discovery.TimeoutSeconds) * time.Second
	placesClient := places.NewClient(cfg.Maps.APIKey, timeout)
	generator := discovery.NewGenerator()
	mapBuilder := maps.NewBuilder(cfg.Maps.APIKey)

	// Fallback chain: live directory first, synthetic generator terminates it.
	discoveryService := discovery.NewService(mapBuilder, placesClient, generator)

	if cfg.Maps.APIKey == "" {
		log.Warn("No Google Maps API key configured, serving synthetic stores without map URLs")
	}

	router := routes.SetupRouter(discoveryService, archive, cfg)

	log.WithField("port", cfg.Server.Port).Info("Starting PharmaFast API server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
