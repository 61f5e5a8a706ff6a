package search

import (
	"context"
	"testing"

	"localserve/models"
	"localserve/services/pricing"

	"go.uber.org/zap"
)

func testService(providers *fakeProviderRepo, history *fakeHistoryRepo) *Service {
	catalog := cleaningCatalog()
	estimator := pricing.NewEstimator(100, 500, 0, "INR", zap.NewNop())
	return NewService(testEngine(providers, catalog), history, catalog, estimator, zap.NewNop())
}

func TestSearchAppendsHistoryRecord(t *testing.T) {
	providers := &fakeProviderRepo{listings: []models.ProviderListing{listing("p1", 0.01)}}
	history := &fakeHistoryRepo{}
	svc := testService(providers, history)

	req := models.SearchRequest{
		Latitude: 0, Longitude: 0, ServiceID: 1, CustomerID: "cust-1",
	}
	results, query, err := svc.Search(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if query.RadiusKm != DefaultRadiusKm {
		t.Fatalf("expected default radius %.0f, got %.2f", DefaultRadiusKm, query.RadiusKm)
	}
	if query.ServiceName != "cleaning" {
		t.Fatalf("expected service name resolved, got %q", query.ServiceName)
	}

	if len(history.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.records))
	}
	rec := history.records[0]
	if rec.CustomerID != "cust-1" || rec.ServiceID != 1 {
		t.Fatalf("history record mismatch: %+v", rec)
	}
	if rec.ID == "" || rec.Results == "" {
		t.Fatalf("history record missing id or snapshot: %+v", rec)
	}

	// Second search appends, never overwrites.
	if _, _, err := svc.Search(context.Background(), req, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.records) != 2 {
		t.Fatalf("expected append-only history, got %d records", len(history.records))
	}
}

func TestSearchHistoryAppendFailureDoesNotFailSearch(t *testing.T) {
	providers := &fakeProviderRepo{listings: []models.ProviderListing{listing("p1", 0.01)}}
	history := &fakeHistoryRepo{err: context.DeadlineExceeded}
	svc := testService(providers, history)

	results, _, err := svc.Search(context.Background(), models.SearchRequest{
		Latitude: 0, Longitude: 0, ServiceID: 1, CustomerID: "cust-1",
	}, nil)
	if err != nil {
		t.Fatalf("history append failure must not fail the search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected results despite history failure, got %d", len(results))
	}
}

func TestSearchWithFiltersAttachesMatchQuality(t *testing.T) {
	l := listing("p1", 0.01)
	l.Config.FilterValues = []models.ProviderFilterValue{
		{FilterName: "gender", Values: []string{"female"}},
	}
	providers := &fakeProviderRepo{listings: []models.ProviderListing{l}}
	svc := testService(providers, &fakeHistoryRepo{})

	results, _, err := svc.Search(context.Background(), models.SearchRequest{
		Latitude: 0, Longitude: 0, ServiceID: 1, CustomerID: "cust-1",
		Filters: []models.CustomerFilterSelection{
			{FilterName: "gender", SelectedValues: []string{"female"}},
		},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].MatchQuality == nil {
		t.Fatal("expected match quality on filtered search")
	}
	if results[0].MatchQuality.Type != models.MatchTypeExact || results[0].MatchQuality.Score != 100 {
		t.Fatalf("expected exact 100%%, got %+v", results[0].MatchQuality)
	}
}

func TestSearchWithTermsAttachesCost(t *testing.T) {
	providers := &fakeProviderRepo{listings: []models.ProviderListing{listing("p1", 0.01)}}
	svc := testService(providers, &fakeHistoryRepo{})

	terms := &models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 1}
	results, _, err := svc.Search(context.Background(), models.SearchRequest{
		Latitude: 0, Longitude: 0, ServiceID: 1, CustomerID: "cust-1",
	}, terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 200/hour x 8 hours x 5 days = 8000.
	if results[0].Cost == nil || results[0].Cost.Calculation != 8000 {
		t.Fatalf("expected cost 8000, got %+v", results[0].Cost)
	}
	if results[0].Cost.Display != "INR 8000.00" {
		t.Fatalf("unexpected display string %q", results[0].Cost.Display)
	}
}

func TestSearchPricingFailureKeepsRowWithFallback(t *testing.T) {
	broken := listing("broken", 0.01)
	broken.Config.RateType = "per_fortnight"
	providers := &fakeProviderRepo{listings: []models.ProviderListing{broken}}
	svc := testService(providers, &fakeHistoryRepo{})

	terms := &models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 1}
	results, _, err := svc.Search(context.Background(), models.SearchRequest{
		Latitude: 0, Longitude: 0, ServiceID: 1, CustomerID: "cust-1",
	}, terms)
	if err != nil {
		t.Fatalf("one provider's pricing failure must not abort the search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected the broken provider to stay listed, got %d results", len(results))
	}
	if results[0].Cost == nil || results[0].Cost.Calculation != 0 {
		t.Fatalf("expected fallback cost, got %+v", results[0].Cost)
	}
}

func TestReplayWithoutHistoryReturnsNil(t *testing.T) {
	svc := testService(&fakeProviderRepo{}, &fakeHistoryRepo{})

	replay, err := svc.Replay(context.Background(), "cust-unknown")
	if err != nil {
		t.Fatalf("no history must not be an error: %v", err)
	}
	if replay != nil {
		t.Fatalf("expected nil replay for a customer with no history, got %+v", replay)
	}
}

func TestReplayReRunsAgainstLiveState(t *testing.T) {
	providers := &fakeProviderRepo{listings: []models.ProviderListing{listing("p1", 0.01)}}
	history := &fakeHistoryRepo{}
	svc := testService(providers, history)

	if _, _, err := svc.Search(context.Background(), models.SearchRequest{
		Latitude: 0, Longitude: 0, ServiceID: 1, CustomerID: "cust-1",
	}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A new provider appears after the original search; replay must see it.
	providers.listings = append(providers.listings, listing("p2", 0.02))

	replay, err := svc.Replay(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replay == nil {
		t.Fatal("expected replay for a customer with history")
	}
	if len(replay.Providers) != 2 {
		t.Fatalf("replay must re-query live data, expected 2 providers, got %d", len(replay.Providers))
	}
	if replay.Query.CustomerID != "cust-1" || replay.Query.RadiusKm != DefaultRadiusKm {
		t.Fatalf("replay must carry the original query, got %+v", replay.Query)
	}
}

func TestReplayWithZeroCurrentProvidersIsSuccess(t *testing.T) {
	providers := &fakeProviderRepo{listings: []models.ProviderListing{listing("p1", 0.01)}}
	history := &fakeHistoryRepo{}
	svc := testService(providers, history)

	if _, _, err := svc.Search(context.Background(), models.SearchRequest{
		Latitude: 0, Longitude: 0, ServiceID: 1, CustomerID: "cust-1",
	}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every provider has since gone offline.
	providers.listings = nil

	replay, err := svc.Replay(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("zero current providers must still be a successful replay: %v", err)
	}
	if replay == nil {
		t.Fatal("expected a replay result, not nil")
	}
	if len(replay.Providers) != 0 {
		t.Fatalf("expected empty provider list, got %d", len(replay.Providers))
	}
}
