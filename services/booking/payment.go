package booking

import (
	"context"
	"fmt"
	"math"
	"strings"

	"localserve/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// AdvanceIntent is the payment handle a client needs to collect the advance.
type AdvanceIntent struct {
	BookingID     string  `json:"booking_id"`
	IntentID      string  `json:"intent_id"`
	ClientSecret  string  `json:"client_secret"`
	AdvanceAmount float64 `json:"advance_amount"`
	Currency      string  `json:"currency"`
}

// CreateAdvanceIntent opens a Stripe PaymentIntent for the booking's advance
// amount. Amounts are converted to the currency's smallest unit.
func (s *Service) CreateAdvanceIntent(ctx context.Context, bookingID, customerID string) (*AdvanceIntent, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, models.NewNotFoundError("booking", bookingID)
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, models.NewValidationError("status", "booking is cancelled")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(b.AdvanceAmount * 100))),
		Currency: stripe.String(strings.ToLower(b.Currency)),
		Metadata: map[string]string{
			"bookingId":  b.ID,
			"customerId": b.CustomerID,
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.Logger.Info("advance payment intent created",
		zap.String("bookingId", b.ID), zap.String("intentId", intent.ID))
	return &AdvanceIntent{
		BookingID:     b.ID,
		IntentID:      intent.ID,
		ClientSecret:  intent.ClientSecret,
		AdvanceAmount: b.AdvanceAmount,
		Currency:      b.Currency,
	}, nil
}
