package models

// Service is one of the marketplace's fixed, small set of offered services
// (cooks, babysitters, elder care, gardeners, drivers). BasePrice is the flat
// price used by the one-off booking estimate, not any provider's recurring rate.
type Service struct {
	ID        int     `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	BasePrice float64 `bson:"basePrice" json:"basePrice"`
	Active    bool    `bson:"active" json:"active"`
}
