package historyRepo

import (
	"context"
	"fmt"
	"time"

	"localserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHistoryRepo is the append-only search history store. Rows are never
// updated or deleted here; retention is an external concern.
type MongoHistoryRepo struct {
	Searches *mongo.Collection
}

func NewMongoHistoryRepo(db *mongo.Database) *MongoHistoryRepo {
	return &MongoHistoryRepo{Searches: db.Collection("search_history")}
}

func (r *MongoHistoryRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.Searches.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create search history index: %w", err)
	}
	return nil
}

func (r *MongoHistoryRepo) Append(ctx context.Context, rec models.SearchRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.Searches.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to append search record: %w", err)
	}
	return nil
}

// LatestByCustomer returns the single most recent search for the customer,
// or nil when the customer has never searched.
func (r *MongoHistoryRepo) LatestByCustomer(ctx context.Context, customerID string) (*models.SearchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	var rec models.SearchRecord
	err := r.Searches.FindOne(ctx, bson.M{"customerId": customerID}, opts).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest search: %w", err)
	}
	return &rec, nil
}

func (r *MongoHistoryRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]models.SearchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.Searches.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	var recs []models.SearchRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode search history: %w", err)
	}
	return recs, nil
}
