package search

import (
	"testing"

	"localserve/models"
)

func result(id string, distance float64, price float64, score int) models.RankedResult {
	r := models.RankedResult{
		Candidate: models.Candidate{ProviderID: id, DistanceKm: distance},
	}
	if price >= 0 {
		r.Cost = &models.CostSummary{Calculation: price}
	}
	if score >= 0 {
		r.MatchQuality = &models.MatchQuality{Score: score}
	}
	return r
}

func ids(results []models.RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ProviderID
	}
	return out
}

func assertOrder(t *testing.T, results []models.RankedResult, want ...string) {
	t.Helper()
	got := ids(results)
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	for i, r := range results {
		if r.SearchRank != i+1 {
			t.Fatalf("expected rank %d at position %d, got %d", i+1, i, r.SearchRank)
		}
	}
}

func TestRankByDistanceDefault(t *testing.T) {
	results := []models.RankedResult{
		result("far", 4.9, -1, -1),
		result("near", 2.0, -1, -1),
		result("mid", 3.5, -1, -1),
	}
	assertOrder(t, Rank(results, ""), "near", "mid", "far")
}

func TestRankByPriceWithDistanceTieBreak(t *testing.T) {
	results := []models.RankedResult{
		result("pricey", 1.0, 900, -1),
		result("cheap-far", 4.0, 500, -1),
		result("cheap-near", 2.0, 500, -1),
	}
	assertOrder(t, Rank(results, models.SortByPrice), "cheap-near", "cheap-far", "pricey")
}

func TestRankByRelevanceWithDistanceTieBreak(t *testing.T) {
	results := []models.RankedResult{
		result("weak", 1.0, -1, 34),
		result("strong-far", 4.0, -1, 100),
		result("strong-near", 2.0, -1, 100),
	}
	assertOrder(t, Rank(results, models.SortByRelevance), "strong-near", "strong-far", "weak")
}

func TestRankByRatingAliasesRelevance(t *testing.T) {
	results := []models.RankedResult{
		result("low", 1.0, -1, 10),
		result("high", 3.0, -1, 90),
	}
	assertOrder(t, Rank(results, models.SortByRating), "high", "low")
}

func TestRankUnknownStrategyFallsBackToDistance(t *testing.T) {
	results := []models.RankedResult{
		result("b", 2.0, -1, -1),
		result("a", 1.0, -1, -1),
	}
	assertOrder(t, Rank(results, "popularity"), "a", "b")
}
