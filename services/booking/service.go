package booking

import (
	"context"
	"fmt"
	"time"

	"localserve/database/repository"
	"localserve/models"
	"localserve/services/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequest is the inbound payload for a one-off booking.
type CreateRequest struct {
	CustomerID  string                           `json:"customer_id"`
	ProviderID  string                           `json:"provider_id" binding:"required"`
	ServiceID   int                              `json:"service_id" binding:"required"`
	ScheduledAt time.Time                        `json:"scheduled_at" binding:"required"`
	Filters     []models.CustomerFilterSelection `json:"filters,omitempty"`
}

// Service creates, previews and cancels one-off bookings. Previews use the
// one-off pricing mode exclusively; the recurring-rate mode lives in the
// search pipeline and the two are never merged.
type Service struct {
	Bookings  repository.BookingRepository
	Customers repository.CustomerRepository
	Providers repository.ProviderRepository
	Catalog   repository.CatalogRepository
	Estimator *pricing.Estimator
	Logger    *zap.Logger
}

func NewService(bookings repository.BookingRepository, customers repository.CustomerRepository, providers repository.ProviderRepository, catalog repository.CatalogRepository, estimator *pricing.Estimator, logger *zap.Logger) *Service {
	return &Service{
		Bookings:  bookings,
		Customers: customers,
		Providers: providers,
		Catalog:   catalog,
		Estimator: estimator,
		Logger:    logger,
	}
}

// Preview prices a booking from the customer's saved filter selection.
func (s *Service) Preview(ctx context.Context, customerID string, serviceID int) (models.PriceBreakdown, error) {
	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return models.PriceBreakdown{}, err
	}
	svc, err := s.Catalog.ServiceByID(ctx, serviceID)
	if err != nil {
		return models.PriceBreakdown{}, err
	}
	filters, err := s.Catalog.FiltersByService(ctx, serviceID)
	if err != nil {
		return models.PriceBreakdown{}, err
	}
	return s.Estimator.BookingEstimate(*svc, customer.SavedFilters, filters), nil
}

// Create validates the request, prices it in one-off mode and persists the
// booking plus its filter-selection rows in one transaction. The customer's
// selection is also saved for future previews.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Booking, models.PriceBreakdown, error) {
	if req.ScheduledAt.Before(time.Now()) {
		return nil, models.PriceBreakdown{}, models.NewValidationError("scheduled_at", "must be in the future")
	}
	svc, err := s.Catalog.ServiceByID(ctx, req.ServiceID)
	if err != nil {
		return nil, models.PriceBreakdown{}, models.NewValidationError("service_id", "unsupported service")
	}
	if _, err := s.Providers.ConfigFor(ctx, req.ProviderID, req.ServiceID); err != nil {
		return nil, models.PriceBreakdown{}, err
	}

	filters, err := s.Catalog.FiltersByService(ctx, req.ServiceID)
	if err != nil {
		return nil, models.PriceBreakdown{}, fmt.Errorf("failed to load filters: %w", err)
	}
	byName := make(map[string]models.ServiceFilter, len(filters))
	for _, f := range filters {
		byName[f.Name] = f
	}
	for _, sel := range req.Filters {
		f, ok := byName[sel.FilterName]
		if !ok {
			return nil, models.PriceBreakdown{}, models.NewValidationError("filters", fmt.Sprintf("unknown filter %q", sel.FilterName))
		}
		if err := models.ValidateSelection(f, sel); err != nil {
			return nil, models.PriceBreakdown{}, models.NewValidationError("filters", err.Error())
		}
	}

	breakdown := s.Estimator.BookingEstimate(*svc, req.Filters, filters)

	now := time.Now()
	b := models.Booking{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		ProviderID:    req.ProviderID,
		ServiceID:     req.ServiceID,
		ScheduledAt:   req.ScheduledAt,
		Status:        models.BookingStatusPending,
		Total:         breakdown.Total,
		AdvanceAmount: breakdown.AdvanceAmount,
		Currency:      breakdown.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	rows := make([]models.BookingFilterRow, 0, len(req.Filters))
	for _, sel := range req.Filters {
		rows = append(rows, models.BookingFilterRow{
			ID:             uuid.New().String(),
			BookingID:      b.ID,
			FilterID:       sel.FilterID,
			FilterName:     sel.FilterName,
			SelectedValues: sel.SelectedValues,
		})
	}

	if err := s.Bookings.CreateWithSelections(ctx, b, rows); err != nil {
		return nil, models.PriceBreakdown{}, err
	}

	if len(req.Filters) > 0 {
		if err := s.Customers.SaveFilters(ctx, req.CustomerID, req.Filters); err != nil {
			s.Logger.Warn("failed to save customer filters", zap.String("customerId", req.CustomerID), zap.Error(err))
		}
	}

	return &b, breakdown, nil
}

// Cancel applies the tiered refund policy and marks the booking cancelled.
func (s *Service) Cancel(ctx context.Context, bookingID, customerID string) (*models.CancellationQuote, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, models.NewNotFoundError("booking", bookingID)
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, models.NewValidationError("status", "booking is already cancelled")
	}

	quote, err := pricing.CancellationQuote(b.Total, b.ScheduledAt, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	s.Logger.Info("booking cancelled",
		zap.String("bookingId", bookingID),
		zap.Int("refundPercent", quote.RefundPercent))
	return &quote, nil
}
