package models

import (
	"time"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a one-off engagement of a provider at a scheduled time. Filter
// selections are persisted as separate rows in the same transaction that
// creates the booking.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	CustomerID    string    `bson:"customerId" json:"customer_id"`
	ProviderID    string    `bson:"providerId" json:"provider_id"`
	ServiceID     int       `bson:"serviceId" json:"service_id"`
	ScheduledAt   time.Time `bson:"scheduledAt" json:"scheduled_at"`
	Status        string    `bson:"status" json:"status"`
	Total         float64   `bson:"total" json:"total"`
	AdvanceAmount float64   `bson:"advanceAmount" json:"advance_amount"`
	Currency      string    `bson:"currency" json:"currency"`
	CreatedAt     time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updated_at"`
}

// BookingFilterRow is one persisted filter-selection row belonging to a booking.
type BookingFilterRow struct {
	ID             string   `bson:"id" json:"id"`
	BookingID      string   `bson:"bookingId" json:"booking_id"`
	FilterID       string   `bson:"filterId" json:"filter_id"`
	FilterName     string   `bson:"filterName" json:"filter_name"`
	SelectedValues []string `bson:"selectedValues" json:"selected_values"`
}
