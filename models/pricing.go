package models

// FilterSurcharge is one additive modifier contributed by a selected option.
type FilterSurcharge struct {
	FilterName string  `json:"filter_name"`
	Value      string  `json:"value"`
	Amount     float64 `json:"amount"`
}

// PriceBreakdown is the derived cost structure for either pricing mode.
// It is computed on demand and never persisted on its own.
type PriceBreakdown struct {
	BaseAmount       float64           `json:"base_amount"`
	FilterSurcharges []FilterSurcharge `json:"filter_surcharges,omitempty"`
	BookingFee       float64           `json:"booking_fee,omitempty"`
	TaxAmount        float64           `json:"tax_amount"`
	Total            float64           `json:"total"`
	AdvanceAmount    float64           `json:"advance_amount"`
	Currency         string            `json:"currency"`
}

// RecurringTerms are the customer-chosen inputs of the recurring-rate mode.
type RecurringTerms struct {
	DaysPerWeek   int `json:"days_per_week"`
	WeeksDuration int `json:"weeks_duration"`
	HoursPerDay   int `json:"hours_per_day,omitempty"`
}

// CancellationQuote is the tiered refund outcome for a booking cancellation.
type CancellationQuote struct {
	RefundPercent int     `json:"refund_percent"`
	ChargePercent int     `json:"charge_percent"`
	RefundAmount  float64 `json:"refund_amount"`
	ChargeAmount  float64 `json:"charge_amount"`
}
