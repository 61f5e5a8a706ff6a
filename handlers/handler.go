package handlers

import (
	"localserve/services/auth"
	"localserve/services/booking"
	"localserve/services/search"
)

// HandlerBundle wires the HTTP layer to its services. Every handler is a
// method on the bundle so routes receive fully injected dependencies.
type HandlerBundle struct {
	SearchService   *search.Service
	BookingService  *booking.Service
	Verification    *auth.VerificationService
	CatalogHandlers *CatalogHandlers
}

func NewHandlerBundle(searchSvc *search.Service, bookingSvc *booking.Service, verification *auth.VerificationService, catalog *CatalogHandlers) *HandlerBundle {
	return &HandlerBundle{
		SearchService:   searchSvc,
		BookingService:  bookingSvc,
		Verification:    verification,
		CatalogHandlers: catalog,
	}
}
