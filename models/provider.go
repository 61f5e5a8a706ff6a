package models

import (
	"time"
)

// Rate types a provider can bill a recurring engagement at.
const (
	RatePerHour  = "per_hour"
	RatePerDay   = "per_day"
	RatePerWeek  = "per_week"
	RatePerMonth = "per_month"
)

// Provider service configuration statuses.
const (
	ConfigStatusActive   = "active"
	ConfigStatusInactive = "inactive"
)

// GeoLocation is a provider's current position. A nil value on the provider
// means "unlocated" and the provider is excluded from search.
type GeoLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// ProviderFilterValue records which values a provider selected for one of the
// service's attribute filters (e.g. gender: ["female"], experience: ["2-5"]).
type ProviderFilterValue struct {
	FilterID   string   `bson:"filterId" json:"filterId"`
	FilterName string   `bson:"filterName" json:"filterName"`
	Values     []string `bson:"values" json:"values"`
}

// ServiceConfig is a provider's offering for a single service, stored in its
// own collection under a unique (providerId, serviceId) index.
type ServiceConfig struct {
	ProviderID   string                `bson:"providerId" json:"providerId"`
	ServiceID    int                   `bson:"serviceId" json:"serviceId"`
	BaseRate     float64               `bson:"baseRate" json:"baseRate"`
	RateType     string                `bson:"rateType" json:"rateType"`
	TaxPercent   float64               `bson:"taxPercent" json:"taxPercent"`
	Status       string                `bson:"status" json:"status"`
	Enabled      bool                  `bson:"enabled" json:"enabled"`
	FilterValues []ProviderFilterValue `bson:"filterValues,omitempty" json:"filterValues,omitempty"`
}

type Provider struct {
	ID          string       `bson:"id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	PhoneNumber string       `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Location    *GeoLocation `bson:"location,omitempty" json:"location,omitempty"`
	Rating      float64      `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProviderListing pairs a located provider with its configuration for the
// searched service, as assembled by the repository.
type ProviderListing struct {
	Provider Provider
	Config   ServiceConfig
}
