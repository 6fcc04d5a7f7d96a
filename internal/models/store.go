package models

import (
	"time"

	"github.com/shubhsJadhav95/NeoCare/internal/geo"
)

// StoreStatus is the provisional fulfillment status of a store for one
// discovery call. It is assigned by the discovery heuristic, not by a real
// store response; see the placeholder note on Service.Discover.
type StoreStatus string

const (
	StatusPending  StoreStatus = "pending"
	StatusAccepted StoreStatus = "accepted"
	StatusRejected StoreStatus = "rejected"
)

// MedicalStore is a candidate pharmacy near the requester, real (Places) or
// synthetic. Built fresh per discovery call and never persisted on its own;
// DistanceKm is always relative to that call's origin.
type MedicalStore struct {
	ID             int    `bson:"id" json:"id"`
	Name           string `bson:"name" json:"name"`
	Address        string `bson:"address" json:"address"`
	Phone          string `bson:"phone,omitempty" json:"phone,omitempty"`
	geo.Coordinate `bson:",inline"`
	DistanceKm     float64     `bson:"distance" json:"distance"`
	Rating         float64     `bson:"rating" json:"rating"`
	Status         StoreStatus `bson:"status" json:"status"`
	EstimatedTime  string      `bson:"estimatedTime,omitempty" json:"estimatedTime,omitempty"`
	RespondedAt    string      `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}

// DiscoveryResult is the outcome of one discovery call: stores ranked by
// ascending distance, plus an optional map embed URL. Transient; it only
// outlives the call through the request archive.
type DiscoveryResult struct {
	Stores    []MedicalStore `bson:"stores" json:"stores"`
	MapURL    string         `bson:"mapUrl,omitempty" json:"mapUrl,omitempty"`
	Origin    geo.Coordinate `bson:"origin" json:"origin"`
	RequestID string         `bson:"requestId" json:"requestId"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
}
