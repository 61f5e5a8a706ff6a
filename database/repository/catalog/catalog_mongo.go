package catalogRepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"localserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo serves the fixed service set and per-service filters.
type MongoCatalogRepo struct {
	ServicesColl *mongo.Collection
	FiltersColl  *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		ServicesColl: db.Collection("services"),
		FiltersColl:  db.Collection("service_filters"),
	}
}

func (r *MongoCatalogRepo) Services(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cur, err := r.ServicesColl.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *MongoCatalogRepo) ServiceByID(ctx context.Context, id int) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := r.ServicesColl.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("service", strconv.Itoa(id))
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return &svc, nil
}

func (r *MongoCatalogRepo) FiltersByService(ctx context.Context, serviceID int) ([]models.ServiceFilter, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "section", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.FiltersColl.Find(ctx, bson.M{"serviceId": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list service filters: %w", err)
	}
	var filters []models.ServiceFilter
	if err := cur.All(ctx, &filters); err != nil {
		return nil, fmt.Errorf("failed to decode service filters: %w", err)
	}
	return filters, nil
}
