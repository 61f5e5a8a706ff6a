package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"localserve/database/repository"
	"localserve/models"

	"go.uber.org/zap"
)

// GeoSearchEngine turns a search center, radius and service id into
// distance-annotated candidates. It scans every active provider for the
// service and computes distance per row; there is no spatial index, which is
// the scaling ceiling of this design and acceptable for a regional
// marketplace.
type GeoSearchEngine struct {
	ProviderRepo repository.ProviderRepository
	CatalogRepo  repository.CatalogRepository
	Logger       *zap.Logger
}

func NewGeoSearchEngine(providers repository.ProviderRepository, catalog repository.CatalogRepository, logger *zap.Logger) *GeoSearchEngine {
	return &GeoSearchEngine{ProviderRepo: providers, CatalogRepo: catalog, Logger: logger}
}

// FindCandidates validates the search parameters, scans providers for the
// service and keeps those within the radius, sorted ascending by distance.
// Zero matches is a valid outcome and returns an empty slice. The returned
// map carries each candidate's service configuration, keyed by provider id,
// for downstream matching and pricing.
func (e *GeoSearchEngine) FindCandidates(ctx context.Context, lat, lon, radiusKm float64, serviceID int) ([]models.Candidate, map[string]models.ServiceConfig, *models.Service, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, nil, nil, err
	}
	if radiusKm < models.MinRadiusKm || radiusKm > models.MaxRadiusKm {
		return nil, nil, nil, models.NewValidationError("radius", fmt.Sprintf("must be between %.0f and %.0f km", models.MinRadiusKm, models.MaxRadiusKm))
	}
	svc, err := e.CatalogRepo.ServiceByID(ctx, serviceID)
	if err != nil {
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil, nil, models.NewValidationError("service_id", "unsupported service")
		}
		return nil, nil, nil, fmt.Errorf("service lookup failed: %w", err)
	}

	listings, err := e.ProviderRepo.ActiveByService(ctx, serviceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("provider scan failed: %w", err)
	}

	resultsCh := make(chan models.Candidate, len(listings))
	var wg sync.WaitGroup

	for _, l := range listings {
		wg.Add(1)
		go func(l models.ProviderListing) {
			defer wg.Done()
			if l.Provider.Location == nil {
				return
			}
			d, err := Distance(lat, lon, l.Provider.Location.Latitude, l.Provider.Location.Longitude)
			if err != nil {
				e.Logger.Warn("skipping provider with invalid coordinates",
					zap.String("providerId", l.Provider.ID), zap.Error(err))
				return
			}
			if d > radiusKm {
				return
			}
			resultsCh <- models.Candidate{
				ProviderID: l.Provider.ID,
				Name:       l.Provider.Name,
				Latitude:   l.Provider.Location.Latitude,
				Longitude:  l.Provider.Location.Longitude,
				DistanceKm: d,
				Status:     l.Config.Status,
				BaseRate:   l.Config.BaseRate,
				RateType:   l.Config.RateType,
			}
		}(l)
	}

	wg.Wait()
	close(resultsCh)

	configs := make(map[string]models.ServiceConfig, len(listings))
	for _, l := range listings {
		configs[l.Provider.ID] = l.Config
	}

	candidates := make([]models.Candidate, 0, len(listings))
	for c := range resultsCh {
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	return candidates, configs, svc, nil
}
