package search

import (
	"math"

	"localserve/models"
)

// MatchFilters scores a provider's offered filter values against the
// customer's selections. A filter matches when the two selected-value sets
// intersect; there is no partial credit within one filter. The result is
// deterministic and independent of filter order.
func MatchFilters(customer []models.CustomerFilterSelection, provider []models.ProviderFilterValue) models.MatchResult {
	total := len(customer)
	if total == 0 {
		return models.MatchResult{MatchType: models.MatchTypeNone}
	}

	offered := make(map[string]map[string]struct{}, len(provider))
	for _, pv := range provider {
		set := make(map[string]struct{}, len(pv.Values))
		for _, v := range pv.Values {
			set[v] = struct{}{}
		}
		offered[pv.FilterName] = set
	}

	matched := 0
	for _, sel := range customer {
		set, ok := offered[sel.FilterName]
		if !ok {
			continue
		}
		for _, v := range sel.SelectedValues {
			if _, hit := set[v]; hit {
				matched++
				break
			}
		}
	}

	pct := int(math.Round(float64(matched) / float64(total) * 100))

	matchType := models.MatchTypeNone
	switch {
	case matched == total:
		matchType = models.MatchTypeExact
	case float64(matched) > float64(total)/2:
		matchType = models.MatchTypePartial
	}

	return models.MatchResult{
		Matched:         matched,
		Total:           total,
		MatchPercentage: pct,
		MatchType:       matchType,
	}
}
