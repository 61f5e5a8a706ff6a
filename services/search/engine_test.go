package search

import (
	"context"
	"errors"
	"testing"

	"localserve/models"

	"go.uber.org/zap"
)

type fakeProviderRepo struct {
	listings []models.ProviderListing
	err      error
}

func (f *fakeProviderRepo) ActiveByService(_ context.Context, _ int) ([]models.ProviderListing, error) {
	return f.listings, f.err
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	for _, l := range f.listings {
		if l.Provider.ID == id {
			p := l.Provider
			return &p, nil
		}
	}
	return nil, models.NewNotFoundError("provider", id)
}

func (f *fakeProviderRepo) ConfigFor(_ context.Context, providerID string, _ int) (*models.ServiceConfig, error) {
	for _, l := range f.listings {
		if l.Provider.ID == providerID {
			cfg := l.Config
			return &cfg, nil
		}
	}
	return nil, models.NewNotFoundError("provider config", providerID)
}

type fakeCatalogRepo struct {
	services  []models.Service
	filters   map[int][]models.ServiceFilter
	lookupErr error
}

func (f *fakeCatalogRepo) Services(_ context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeCatalogRepo) ServiceByID(_ context.Context, id int) (*models.Service, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, s := range f.services {
		if s.ID == id {
			svc := s
			return &svc, nil
		}
	}
	return nil, models.NewNotFoundError("service", "")
}

func (f *fakeCatalogRepo) FiltersByService(_ context.Context, serviceID int) ([]models.ServiceFilter, error) {
	return f.filters[serviceID], nil
}

type fakeHistoryRepo struct {
	records []models.SearchRecord
	err     error
}

func (f *fakeHistoryRepo) Append(_ context.Context, rec models.SearchRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistoryRepo) LatestByCustomer(_ context.Context, customerID string) (*models.SearchRecord, error) {
	var latest *models.SearchRecord
	for i := range f.records {
		r := &f.records[i]
		if r.CustomerID != customerID {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return latest, nil
}

func (f *fakeHistoryRepo) ListByCustomer(_ context.Context, customerID string, limit int) ([]models.SearchRecord, error) {
	var out []models.SearchRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].CustomerID == customerID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

// listing places a provider at a latitude offset north of the equator, so its
// distance from (0, 0) is offsetDeg * 111.1949 km.
func listing(id string, latOffsetDeg float64) models.ProviderListing {
	return models.ProviderListing{
		Provider: models.Provider{
			ID:       id,
			Name:     "Provider " + id,
			Location: &models.GeoLocation{Latitude: latOffsetDeg, Longitude: 0},
		},
		Config: models.ServiceConfig{
			ProviderID: id,
			ServiceID:  1,
			BaseRate:   200,
			RateType:   models.RatePerHour,
			Status:     models.ConfigStatusActive,
			Enabled:    true,
		},
	}
}

func testEngine(providers *fakeProviderRepo, catalog *fakeCatalogRepo) *GeoSearchEngine {
	return NewGeoSearchEngine(providers, catalog, zap.NewNop())
}

func cleaningCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: []models.Service{{ID: 1, Name: "cleaning", Active: true}}}
}

func TestFindCandidatesRadiusBoundary(t *testing.T) {
	// Offsets chosen around a 5 km radius: 0.018 deg ~ 2.0 km,
	// 0.0441 deg ~ 4.9 km, 0.0459 deg ~ 5.1 km.
	providers := &fakeProviderRepo{listings: []models.ProviderListing{
		listing("just-outside", 0.0459),
		listing("near", 0.018),
		listing("edge", 0.0441),
	}}

	engine := testEngine(providers, cleaningCatalog())
	candidates, configs, svc, err := engine.FindCandidates(context.Background(), 0, 0, 5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil || svc.Name != "cleaning" {
		t.Fatalf("expected cleaning service, got %+v", svc)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates inside the radius, got %d", len(candidates))
	}
	if candidates[0].ProviderID != "near" || candidates[1].ProviderID != "edge" {
		t.Fatalf("expected [near edge] sorted by distance, got [%s %s]",
			candidates[0].ProviderID, candidates[1].ProviderID)
	}
	if candidates[0].DistanceKm >= candidates[1].DistanceKm {
		t.Fatalf("candidates not sorted ascending: %.3f then %.3f",
			candidates[0].DistanceKm, candidates[1].DistanceKm)
	}
	if _, ok := configs["near"]; !ok {
		t.Fatal("expected config map to carry the near provider")
	}
}

func TestFindCandidatesSkipsUnlocatedProvider(t *testing.T) {
	unlocated := listing("unlocated", 0)
	unlocated.Provider.Location = nil
	providers := &fakeProviderRepo{listings: []models.ProviderListing{
		unlocated,
		listing("located", 0.01),
	}}

	engine := testEngine(providers, cleaningCatalog())
	candidates, _, _, err := engine.FindCandidates(context.Background(), 0, 0, 5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ProviderID != "located" {
		t.Fatalf("expected only the located provider, got %+v", candidates)
	}
}

func TestFindCandidatesEmptyResultIsNotAnError(t *testing.T) {
	engine := testEngine(&fakeProviderRepo{}, cleaningCatalog())
	candidates, _, _, err := engine.FindCandidates(context.Background(), 0, 0, 5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected empty result, got %d candidates", len(candidates))
	}
}

func TestFindCandidatesValidation(t *testing.T) {
	engine := testEngine(&fakeProviderRepo{}, cleaningCatalog())

	tests := []struct {
		name      string
		lat, lon  float64
		radius    float64
		serviceID int
	}{
		{"latitude out of range", 91, 0, 5, 1},
		{"longitude out of range", 0, -181, 5, 1},
		{"radius below minimum", 0, 0, 0.5, 1},
		{"radius above maximum", 0, 0, 51, 1},
		{"unknown service", 0, 0, 5, 99},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := engine.FindCandidates(context.Background(), tc.lat, tc.lon, tc.radius, tc.serviceID)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFindCandidatesServiceLookupFailure(t *testing.T) {
	catalog := cleaningCatalog()
	catalog.lookupErr = errors.New("mongo down")
	engine := testEngine(&fakeProviderRepo{}, catalog)

	_, _, _, err := engine.FindCandidates(context.Background(), 0, 0, 5, 1)
	if err == nil {
		t.Fatal("expected error when the service lookup fails")
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("store failure must not surface as a validation error: %v", err)
	}
}

func TestFindCandidatesProviderScanFailure(t *testing.T) {
	providers := &fakeProviderRepo{err: errors.New("mongo down")}
	engine := testEngine(providers, cleaningCatalog())

	_, _, _, err := engine.FindCandidates(context.Background(), 0, 0, 5, 1)
	if err == nil {
		t.Fatal("expected error when the provider scan fails")
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("scan failure must not surface as a validation error: %v", err)
	}
}
