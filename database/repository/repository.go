package repository

import (
	"context"
	"time"

	"localserve/models"
)

// ProviderRepository reads provider state for the discovery engine. Provider
// configurations are written elsewhere; this core only reads them.
type ProviderRepository interface {
	// ActiveByService returns every provider holding an active, enabled
	// configuration for the service and a known location. This is a full
	// scan per service; there is no spatial index.
	ActiveByService(ctx context.Context, serviceID int) ([]models.ProviderListing, error)
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	ConfigFor(ctx context.Context, providerID string, serviceID int) (*models.ServiceConfig, error)
}

// SearchHistoryRepository is the append-only store of search queries and
// their result snapshots.
type SearchHistoryRepository interface {
	Append(ctx context.Context, rec models.SearchRecord) error
	LatestByCustomer(ctx context.Context, customerID string) (*models.SearchRecord, error)
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]models.SearchRecord, error)
}

// CustomerRepository manages customer identity and login state.
type CustomerRepository interface {
	GetByMobile(ctx context.Context, mobile string) (*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, c models.Customer) error
	MarkLogin(ctx context.Context, id string, at time.Time) error
	SaveFilters(ctx context.Context, id string, filters []models.CustomerFilterSelection) error
}

// CatalogRepository serves the fixed service set and per-service filter
// definitions.
type CatalogRepository interface {
	Services(ctx context.Context) ([]models.Service, error)
	ServiceByID(ctx context.Context, id int) (*models.Service, error)
	FiltersByService(ctx context.Context, serviceID int) ([]models.ServiceFilter, error)
}

// BookingRepository persists bookings together with their filter-selection
// rows; the write is all-or-nothing.
type BookingRepository interface {
	CreateWithSelections(ctx context.Context, b models.Booking, rows []models.BookingFilterRow) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
