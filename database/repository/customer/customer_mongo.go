package customerRepo

import (
	"context"
	"fmt"
	"time"

	"localserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCustomerRepo struct {
	Customers *mongo.Collection
}

func NewMongoCustomerRepo(db *mongo.Database) *MongoCustomerRepo {
	return &MongoCustomerRepo{Customers: db.Collection("customers")}
}

func (r *MongoCustomerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.Customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "mobileNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create customer mobile index: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepo) GetByMobile(ctx context.Context, mobile string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Customer
	if err := r.Customers.FindOne(ctx, bson.M{"mobileNumber": mobile}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer by mobile: %w", err)
	}
	return &c, nil
}

func (r *MongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Customer
	if err := r.Customers.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("customer", id)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return &c, nil
}

func (r *MongoCustomerRepo) Create(ctx context.Context, c models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.Customers.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepo) MarkLogin(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"lastLoginAt": at, "updatedAt": at}}
	res, err := r.Customers.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark login: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("customer", id)
	}
	return nil
}

func (r *MongoCustomerRepo) SaveFilters(ctx context.Context, id string, filters []models.CustomerFilterSelection) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"savedFilters": filters, "updatedAt": time.Now()}}
	res, err := r.Customers.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to save customer filters: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("customer", id)
	}
	return nil
}
