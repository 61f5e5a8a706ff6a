package models

import (
	"time"
)

// Radius bounds accepted by the search engine, in kilometres.
const (
	MinRadiusKm = 1.0
	MaxRadiusKm = 50.0
)

// Sort strategies understood by the ranking assembler.
const (
	SortByDistance  = "distance"
	SortByPrice     = "price"
	SortByRating    = "rating"
	SortByRelevance = "relevance"
)

// SearchRequest is the search pipeline's input. Handlers build it from their
// bound payloads; presence checks happen there, since latitude 0 and
// longitude 0 are valid coordinates.
type SearchRequest struct {
	Latitude   float64                   `json:"latitude"`
	Longitude  float64                   `json:"longitude"`
	RadiusKm   float64                   `json:"radius"`
	ServiceID  int                       `json:"service_id"`
	CustomerID string                    `json:"customer_id"`
	Filters    []CustomerFilterSelection `json:"filters,omitempty"`
	SortBy     string                    `json:"sort_by,omitempty"`
}

// Candidate is a provider produced by the geo search, before matching and
// pricing are applied.
type Candidate struct {
	ProviderID string  `json:"provider_id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
	Status     string  `json:"status"`
	BaseRate   float64 `json:"base_rate"`
	RateType   string  `json:"rate_type"`
}

// MatchQuality is the per-provider filter match summary exposed over HTTP.
type MatchQuality struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

// CostSummary carries a computed cost plus its display string.
type CostSummary struct {
	Calculation float64 `json:"calculation"`
	Display     string  `json:"display"`
}

// RankedResult is one fully assembled search result row.
type RankedResult struct {
	Candidate
	SearchRank   int           `json:"search_rank"`
	MatchQuality *MatchQuality `json:"match_quality,omitempty"`
	Cost         *CostSummary  `json:"cost,omitempty"`
}

// SearchQuery is the immutable record of one search's parameters. A new search
// always appends a new record; the most recent per customer (timestamp desc)
// drives replay.
type SearchQuery struct {
	CustomerID  string    `bson:"customerId" json:"customer_id"`
	Latitude    float64   `bson:"latitude" json:"latitude"`
	Longitude   float64   `bson:"longitude" json:"longitude"`
	RadiusKm    float64   `bson:"radiusKm" json:"radius"`
	ServiceID   int       `bson:"serviceId" json:"service_id"`
	ServiceName string    `bson:"serviceName" json:"service_name"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// SearchRecord is the appended history row: the query plus a serialized
// snapshot of what the customer saw. The snapshot is for history display
// only; replay always re-queries live state.
type SearchRecord struct {
	ID          string      `bson:"id" json:"id"`
	SearchQuery `bson:",inline"`
	Results     string `bson:"results" json:"results"`
}
