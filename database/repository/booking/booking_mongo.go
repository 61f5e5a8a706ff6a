package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"localserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoBookingRepo struct {
	Client     *mongo.Client
	Bookings   *mongo.Collection
	FilterRows *mongo.Collection
}

func NewMongoBookingRepo(client *mongo.Client, db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{
		Client:     client,
		Bookings:   db.Collection("bookings"),
		FilterRows: db.Collection("booking_filters"),
	}
}

// CreateWithSelections inserts the booking and its filter-selection rows in a
// single session transaction. Any failure after partial writes rolls back
// entirely; no orphaned rows survive.
func (r *MongoBookingRepo) CreateWithSelections(ctx context.Context, b models.Booking, rows []models.BookingFilterRow) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := r.Client.StartSession()
	if err != nil {
		return &models.TransactionError{Op: "create booking", Err: err}
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.Bookings.InsertOne(sc, b); err != nil {
			return nil, fmt.Errorf("insert booking: %w", err)
		}
		if len(rows) > 0 {
			docs := make([]interface{}, 0, len(rows))
			for _, row := range rows {
				docs = append(docs, row)
			}
			if _, err := r.FilterRows.InsertMany(sc, docs); err != nil {
				return nil, fmt.Errorf("insert booking filter rows: %w", err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return &models.TransactionError{Op: "create booking", Err: err}
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.Bookings.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("booking", id)
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.Bookings.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("booking", id)
	}
	return nil
}
