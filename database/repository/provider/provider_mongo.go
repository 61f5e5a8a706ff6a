package providerRepo

import (
	"context"
	"fmt"
	"time"

	"localserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo reads providers and their per-service configurations.
type MongoProviderRepo struct {
	Providers *mongo.Collection
	Configs   *mongo.Collection
}

func NewMongoProviderRepo(db *mongo.Database) *MongoProviderRepo {
	return &MongoProviderRepo{
		Providers: db.Collection("providers"),
		Configs:   db.Collection("provider_configs"),
	}
}

// EnsureIndexes creates the unique (providerId, serviceId) index on configs
// and the id indexes on providers.
func (r *MongoProviderRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.Providers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create provider id index: %w", err)
	}
	_, err = r.Configs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "serviceId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create provider config index: %w", err)
	}
	return nil
}

// ActiveByService fetches every active, enabled configuration for the service
// and joins the owning providers that have a known location. Distance is not
// computed here: the engine scans the full result set per search.
func (r *MongoProviderRepo) ActiveByService(ctx context.Context, serviceID int) ([]models.ProviderListing, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := r.Configs.Find(ctx, bson.M{
		"serviceId": serviceID,
		"status":    models.ConfigStatusActive,
		"enabled":   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query provider configs: %w", err)
	}
	var configs []models.ServiceConfig
	if err := cur.All(ctx, &configs); err != nil {
		return nil, fmt.Errorf("failed to decode provider configs: %w", err)
	}
	if len(configs) == 0 {
		return []models.ProviderListing{}, nil
	}

	ids := make([]string, 0, len(configs))
	for _, cfg := range configs {
		ids = append(ids, cfg.ProviderID)
	}
	provCur, err := r.Providers.Find(ctx, bson.M{
		"id":       bson.M{"$in": ids},
		"location": bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	var providers []models.Provider
	if err := provCur.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}

	byID := make(map[string]models.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	var listings []models.ProviderListing
	for _, cfg := range configs {
		p, ok := byID[cfg.ProviderID]
		if !ok || p.Location == nil {
			continue
		}
		listings = append(listings, models.ProviderListing{Provider: p, Config: cfg})
	}
	return listings, nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Provider
	if err := r.Providers.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("provider", id)
		}
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	return &p, nil
}

func (r *MongoProviderRepo) ConfigFor(ctx context.Context, providerID string, serviceID int) (*models.ServiceConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cfg models.ServiceConfig
	err := r.Configs.FindOne(ctx, bson.M{"providerId": providerID, "serviceId": serviceID}).Decode(&cfg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("provider config", fmt.Sprintf("%s/%d", providerID, serviceID))
		}
		return nil, fmt.Errorf("failed to fetch provider config: %w", err)
	}
	return &cfg, nil
}
