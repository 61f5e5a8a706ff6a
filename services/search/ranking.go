package search

import (
	"sort"

	"localserve/models"
)

// Rank sorts assembled results by the requested strategy and assigns a
// 1-based search rank. Tie-breaks: price ties fall back to ascending
// distance, as do rating/relevance ties. Unknown strategies fall back to
// distance, the default.
func Rank(results []models.RankedResult, sortBy string) []models.RankedResult {
	switch sortBy {
	case models.SortByPrice:
		sort.SliceStable(results, func(i, j int) bool {
			pi, pj := price(results[i]), price(results[j])
			if pi != pj {
				return pi < pj
			}
			return results[i].DistanceKm < results[j].DistanceKm
		})
	case models.SortByRating, models.SortByRelevance:
		sort.SliceStable(results, func(i, j int) bool {
			si, sj := score(results[i]), score(results[j])
			if si != sj {
				return si > sj
			}
			return results[i].DistanceKm < results[j].DistanceKm
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].DistanceKm < results[j].DistanceKm
		})
	}

	for i := range results {
		results[i].SearchRank = i + 1
	}
	return results
}

func price(r models.RankedResult) float64 {
	if r.Cost == nil {
		return 0
	}
	return r.Cost.Calculation
}

func score(r models.RankedResult) int {
	if r.MatchQuality == nil {
		return 0
	}
	return r.MatchQuality.Score
}
