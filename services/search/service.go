package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"localserve/database/repository"
	"localserve/models"
	"localserve/services/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultRadiusKm applies when a search omits the radius.
const DefaultRadiusKm = 5.0

// Service orchestrates the discovery pipeline: geo scan, filter matching,
// pricing, ranking, and the history append. Each call is a stateless unit of
// work; all cross-request state lives in the repositories.
type Service struct {
	Engine      *GeoSearchEngine
	HistoryRepo repository.SearchHistoryRepository
	CatalogRepo repository.CatalogRepository
	Estimator   *pricing.Estimator
	Logger      *zap.Logger
}

func NewService(engine *GeoSearchEngine, history repository.SearchHistoryRepository, catalog repository.CatalogRepository, estimator *pricing.Estimator, logger *zap.Logger) *Service {
	return &Service{
		Engine:      engine,
		HistoryRepo: history,
		CatalogRepo: catalog,
		Estimator:   estimator,
		Logger:      logger,
	}
}

// Search runs the full pipeline and appends one history record. When terms
// are supplied each result carries a recurring-rate cost; when filters are
// supplied each result carries a match quality. One provider's pricing
// failure falls back to the default price and never aborts the list.
func (s *Service) Search(ctx context.Context, req models.SearchRequest, terms *models.RecurringTerms) ([]models.RankedResult, *models.SearchQuery, error) {
	radius := req.RadiusKm
	if radius == 0 {
		radius = DefaultRadiusKm
	}

	candidates, configs, svc, err := s.Engine.FindCandidates(ctx, req.Latitude, req.Longitude, radius, req.ServiceID)
	if err != nil {
		return nil, nil, err
	}

	results := make([]models.RankedResult, 0, len(candidates))
	for _, c := range candidates {
		r := models.RankedResult{Candidate: c}
		cfg := configs[c.ProviderID]

		if len(req.Filters) > 0 {
			m := MatchFilters(req.Filters, cfg.FilterValues)
			r.MatchQuality = &models.MatchQuality{Type: m.MatchType, Score: m.MatchPercentage}
		}

		if terms != nil {
			breakdown, err := s.Estimator.RecurringEstimate(cfg, *terms)
			if err != nil {
				s.Logger.Warn("price computation failed for provider, using fallback",
					zap.String("providerId", c.ProviderID), zap.Error(err))
				breakdown = s.Estimator.FallbackBreakdown()
			}
			r.Cost = &models.CostSummary{
				Calculation: breakdown.Total,
				Display:     fmt.Sprintf("%s %.2f", breakdown.Currency, breakdown.Total),
			}
		}
		results = append(results, r)
	}

	results = Rank(results, req.SortBy)

	query := models.SearchQuery{
		CustomerID:  req.CustomerID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		RadiusKm:    radius,
		ServiceID:   req.ServiceID,
		ServiceName: svc.Name,
		Timestamp:   time.Now(),
	}
	s.appendHistory(ctx, query, results)

	return results, &query, nil
}

// appendHistory writes the audit record for a search. The snapshot is for
// history display only; a failed append is logged and does not fail the
// search itself.
func (s *Service) appendHistory(ctx context.Context, query models.SearchQuery, results []models.RankedResult) {
	snapshot, err := json.Marshal(results)
	if err != nil {
		s.Logger.Error("failed to serialize search snapshot", zap.Error(err))
		return
	}
	rec := models.SearchRecord{
		ID:          uuid.New().String(),
		SearchQuery: query,
		Results:     string(snapshot),
	}
	if err := s.HistoryRepo.Append(ctx, rec); err != nil {
		s.Logger.Error("failed to append search history",
			zap.String("customerId", query.CustomerID), zap.Error(err))
	}
}

// ReplayResult is a returning customer's prior search re-run against live
// data: current providers plus the original search metadata.
type ReplayResult struct {
	Query     models.SearchQuery `json:"searchDetails"`
	Providers []models.Candidate `json:"data"`
}

// Replay fetches the customer's most recent search and re-runs the geo scan
// with its stored parameters. The persisted snapshot is never used as the
// answer. A nil result (no error) means the customer has no search history;
// zero current providers is a successful replay with empty data.
func (s *Service) Replay(ctx context.Context, customerID string) (*ReplayResult, error) {
	latest, err := s.HistoryRepo.LatestByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	candidates, _, _, err := s.Engine.FindCandidates(ctx, latest.Latitude, latest.Longitude, latest.RadiusKm, latest.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("replay failed: %w", err)
	}
	return &ReplayResult{
		Query:     latest.SearchQuery,
		Providers: candidates,
	}, nil
}

// History lists the customer's last searches with their stored snapshots.
func (s *Service) History(ctx context.Context, customerID string, limit int) ([]models.SearchRecord, error) {
	return s.HistoryRepo.ListByCustomer(ctx, customerID, limit)
}
