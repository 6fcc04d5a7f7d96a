package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shubhsJadhav95/NeoCare/internal/models"
)

// ErrNotFound is returned when no archived request matches the ID.
var ErrNotFound = errors.New("delivery request not found")

// DeliveryRecord is one archived delivery request together with the
// discovery outcome produced for it.
type DeliveryRecord struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"-"`
	RequestID string                 `bson:"requestId" json:"requestId"`
	Request   models.DeliveryRequest `bson:"request" json:"request"`
	Result    models.DiscoveryResult `bson:"result" json:"result"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
}

// RequestArchive persists submitted delivery requests. The discovery core
// itself keeps nothing; this is the caller-side storage the handler owns.
type RequestArchive struct {
	DB *mongo.Database
}

func NewRequestArchive(db *mongo.Database) *RequestArchive {
	return &RequestArchive{DB: db}
}

func (a *RequestArchive) collection() *mongo.Collection {
	return a.DB.Collection("delivery_requests")
}

// Save archives the request and its result.
func (a *RequestArchive) Save(ctx context.Context, record DeliveryRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := a.collection().InsertOne(ctx, record)
	return err
}

// FindByRequestID looks an archived request up by its discovery request ID.
func (a *RequestArchive) FindByRequestID(ctx context.Context, requestID string) (*DeliveryRecord, error) {
	var record DeliveryRecord
	err := a.collection().FindOne(ctx, bson.M{"requestId": requestID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
