package pricing

import (
	"fmt"
	"math"

	"localserve/models"

	"go.uber.org/zap"
)

// defaultHoursPerDay applies to per_hour recurring rates when the customer
// does not specify hours.
const defaultHoursPerDay = 8

// advanceFraction of the total is collected up front, floored at MinAdvance.
const advanceFraction = 0.25

// Estimator computes both pricing modes. Recurring-rate mode prices a
// provider's standing engagement from its service configuration; one-off
// booking mode prices an ad-hoc booking from the service's flat base price
// plus filter surcharges and a fixed booking fee. The two modes are not
// interchangeable and are kept as separate code paths.
type Estimator struct {
	BookingFee   float64
	MinAdvance   float64
	FallbackRate float64
	Currency     string
	Logger       *zap.Logger
}

func NewEstimator(bookingFee, minAdvance, fallbackRate float64, currency string, logger *zap.Logger) *Estimator {
	return &Estimator{
		BookingFee:   bookingFee,
		MinAdvance:   minAdvance,
		FallbackRate: fallbackRate,
		Currency:     currency,
		Logger:       logger,
	}
}

// RecurringEstimate prices a recurring engagement from the provider's
// configuration. A missing base rate falls back to the configured default
// rather than failing; the anomaly is logged, not surfaced.
func (e *Estimator) RecurringEstimate(cfg models.ServiceConfig, terms models.RecurringTerms) (models.PriceBreakdown, error) {
	if terms.DaysPerWeek < 1 || terms.DaysPerWeek > 7 {
		return models.PriceBreakdown{}, models.NewValidationError("days_per_week", "must be between 1 and 7")
	}
	if terms.WeeksDuration < 1 {
		return models.PriceBreakdown{}, models.NewValidationError("weeks_duration", "must be at least 1")
	}

	base := cfg.BaseRate
	if base <= 0 {
		e.Logger.Warn("provider config missing base rate, using fallback",
			zap.String("providerId", cfg.ProviderID), zap.Int("serviceId", cfg.ServiceID))
		base = e.FallbackRate
	}

	hoursPerDay := terms.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = defaultHoursPerDay
	}
	totalDays := terms.DaysPerWeek * terms.WeeksDuration

	var subtotal float64
	switch cfg.RateType {
	case models.RatePerHour:
		subtotal = base * float64(hoursPerDay) * float64(totalDays)
	case models.RatePerDay:
		subtotal = base * float64(totalDays)
	case models.RatePerWeek:
		subtotal = base * float64(terms.WeeksDuration)
	case models.RatePerMonth:
		subtotal = base * math.Ceil(float64(terms.WeeksDuration)/4)
	default:
		return models.PriceBreakdown{}, models.NewValidationError("rate_type", fmt.Sprintf("unsupported rate type %q", cfg.RateType))
	}

	taxAmount := subtotal * cfg.TaxPercent / 100
	total := subtotal + taxAmount

	return models.PriceBreakdown{
		BaseAmount:    subtotal,
		TaxAmount:     taxAmount,
		Total:         total,
		AdvanceAmount: e.AdvanceAmount(total),
		Currency:      e.Currency,
	}, nil
}

// BookingEstimate prices a one-off booking: the service's flat base price,
// plus each selected option's price modifier, plus the fixed booking fee.
// A selected value with no modifier on record contributes zero.
func (e *Estimator) BookingEstimate(svc models.Service, selections []models.CustomerFilterSelection, filters []models.ServiceFilter) models.PriceBreakdown {
	byName := make(map[string]models.ServiceFilter, len(filters))
	for _, f := range filters {
		byName[f.Name] = f
	}

	var surcharges []models.FilterSurcharge
	var surchargeTotal float64
	for _, sel := range selections {
		f, ok := byName[sel.FilterName]
		if !ok {
			continue
		}
		for _, v := range sel.SelectedValues {
			opt, ok := f.OptionByValue(v)
			if !ok || opt.PriceModifier == 0 {
				continue
			}
			surcharges = append(surcharges, models.FilterSurcharge{
				FilterName: sel.FilterName,
				Value:      v,
				Amount:     opt.PriceModifier,
			})
			surchargeTotal += opt.PriceModifier
		}
	}

	total := svc.BasePrice + surchargeTotal + e.BookingFee
	return models.PriceBreakdown{
		BaseAmount:       svc.BasePrice,
		FilterSurcharges: surcharges,
		BookingFee:       e.BookingFee,
		Total:            total,
		AdvanceAmount:    e.AdvanceAmount(total),
		Currency:         e.Currency,
	}
}

// AdvanceAmount is 25% of the total, floored at the configured minimum.
func (e *Estimator) AdvanceAmount(total float64) float64 {
	return math.Max(total*advanceFraction, e.MinAdvance)
}

// FallbackBreakdown is the safe default used when per-provider price
// computation fails mid-search; the row is kept rather than aborting the list.
func (e *Estimator) FallbackBreakdown() models.PriceBreakdown {
	total := e.FallbackRate
	return models.PriceBreakdown{
		BaseAmount:    e.FallbackRate,
		Total:         total,
		AdvanceAmount: e.AdvanceAmount(total),
		Currency:      e.Currency,
	}
}
