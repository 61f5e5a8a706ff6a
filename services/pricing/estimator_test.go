package pricing

import (
	"errors"
	"testing"

	"localserve/models"

	"go.uber.org/zap"
)

func testEstimator() *Estimator {
	return NewEstimator(100, 500, 0, "INR", zap.NewNop())
}

func config(rateType string, baseRate, taxPercent float64) models.ServiceConfig {
	return models.ServiceConfig{
		ProviderID: "p1",
		ServiceID:  1,
		BaseRate:   baseRate,
		RateType:   rateType,
		TaxPercent: taxPercent,
	}
}

func TestRecurringEstimateByRateType(t *testing.T) {
	tests := []struct {
		name         string
		cfg          models.ServiceConfig
		terms        models.RecurringTerms
		wantSubtotal float64
		wantTotal    float64
	}{
		{
			name:         "per hour defaults to 8 hours a day",
			cfg:          config(models.RatePerHour, 50, 0),
			terms:        models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 2},
			wantSubtotal: 50 * 8 * 10,
			wantTotal:    4000,
		},
		{
			name:         "per hour honors explicit hours",
			cfg:          config(models.RatePerHour, 50, 0),
			terms:        models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 1, HoursPerDay: 4},
			wantSubtotal: 50 * 4 * 5,
			wantTotal:    1000,
		},
		{
			name:         "per day multiplies total days",
			cfg:          config(models.RatePerDay, 400, 0),
			terms:        models.RecurringTerms{DaysPerWeek: 3, WeeksDuration: 4},
			wantSubtotal: 400 * 12,
			wantTotal:    4800,
		},
		{
			name:         "per week multiplies weeks only",
			cfg:          config(models.RatePerWeek, 2000, 0),
			terms:        models.RecurringTerms{DaysPerWeek: 7, WeeksDuration: 3},
			wantSubtotal: 6000,
			wantTotal:    6000,
		},
		{
			name:         "per month rounds partial months up",
			cfg:          config(models.RatePerMonth, 8000, 0),
			terms:        models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 5},
			wantSubtotal: 8000 * 2,
			wantTotal:    16000,
		},
		{
			name:         "per month exact four weeks is one month",
			cfg:          config(models.RatePerMonth, 8000, 0),
			terms:        models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 4},
			wantSubtotal: 8000,
			wantTotal:    8000,
		},
		{
			name:         "tax is applied on the subtotal",
			cfg:          config(models.RatePerDay, 1000, 18),
			terms:        models.RecurringTerms{DaysPerWeek: 1, WeeksDuration: 1},
			wantSubtotal: 1000,
			wantTotal:    1180,
		},
	}

	e := testEstimator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.RecurringEstimate(tc.cfg, tc.terms)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.BaseAmount != tc.wantSubtotal {
				t.Fatalf("expected subtotal %.2f, got %.2f", tc.wantSubtotal, got.BaseAmount)
			}
			if got.Total != tc.wantTotal {
				t.Fatalf("expected total %.2f, got %.2f", tc.wantTotal, got.Total)
			}
			if got.Total < got.BaseAmount {
				t.Fatalf("total %.2f below subtotal %.2f", got.Total, got.BaseAmount)
			}
			if got.Currency != "INR" {
				t.Fatalf("expected INR, got %q", got.Currency)
			}
		})
	}
}

func TestRecurringEstimateValidation(t *testing.T) {
	e := testEstimator()
	tests := []struct {
		name  string
		cfg   models.ServiceConfig
		terms models.RecurringTerms
	}{
		{"zero days per week", config(models.RatePerHour, 50, 0), models.RecurringTerms{DaysPerWeek: 0, WeeksDuration: 1}},
		{"eight days per week", config(models.RatePerHour, 50, 0), models.RecurringTerms{DaysPerWeek: 8, WeeksDuration: 1}},
		{"zero weeks", config(models.RatePerHour, 50, 0), models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 0}},
		{"unknown rate type", config("per_fortnight", 50, 0), models.RecurringTerms{DaysPerWeek: 5, WeeksDuration: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.RecurringEstimate(tc.cfg, tc.terms)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecurringEstimateMissingBaseRateUsesFallback(t *testing.T) {
	e := NewEstimator(100, 500, 250, "INR", zap.NewNop())
	got, err := e.RecurringEstimate(config(models.RatePerDay, 0, 0), models.RecurringTerms{DaysPerWeek: 2, WeeksDuration: 1})
	if err != nil {
		t.Fatalf("missing base rate must not fail: %v", err)
	}
	if got.BaseAmount != 500 {
		t.Fatalf("expected fallback rate applied, got subtotal %.2f", got.BaseAmount)
	}
}

func TestAdvanceAmountFloor(t *testing.T) {
	e := testEstimator()
	tests := []struct {
		total float64
		want  float64
	}{
		{10000, 2500},
		{2000, 500},
		{100, 500},
		{0, 500},
	}
	for _, tc := range tests {
		if got := e.AdvanceAmount(tc.total); got != tc.want {
			t.Fatalf("advance for total %.2f: expected %.2f, got %.2f", tc.total, tc.want, got)
		}
	}
}

func TestBookingEstimateSurcharges(t *testing.T) {
	e := testEstimator()
	svc := models.Service{ID: 1, Name: "cleaning", BasePrice: 800, Active: true}
	filters := []models.ServiceFilter{
		{
			Name: "home_size",
			Options: []models.FilterOption{
				{Value: "1bhk", PriceModifier: 0},
				{Value: "3bhk", PriceModifier: 300},
			},
		},
		{
			Name: "deep_clean",
			Options: []models.FilterOption{
				{Value: "yes", PriceModifier: 500},
			},
		},
	}
	selections := []models.CustomerFilterSelection{
		{FilterName: "home_size", SelectedValues: []string{"3bhk"}},
		{FilterName: "deep_clean", SelectedValues: []string{"yes"}},
		{FilterName: "unknown_filter", SelectedValues: []string{"whatever"}},
	}

	got := e.BookingEstimate(svc, selections, filters)
	if got.BaseAmount != 800 {
		t.Fatalf("expected base 800, got %.2f", got.BaseAmount)
	}
	if got.BookingFee != 100 {
		t.Fatalf("expected booking fee 100, got %.2f", got.BookingFee)
	}
	if len(got.FilterSurcharges) != 2 {
		t.Fatalf("expected 2 surcharges, got %d: %+v", len(got.FilterSurcharges), got.FilterSurcharges)
	}
	if got.Total != 800+300+500+100 {
		t.Fatalf("expected total 1700, got %.2f", got.Total)
	}
	if got.AdvanceAmount != 500 {
		t.Fatalf("expected advance floored at 500, got %.2f", got.AdvanceAmount)
	}
}

func TestBookingEstimateWithoutSelections(t *testing.T) {
	e := testEstimator()
	svc := models.Service{ID: 1, Name: "cleaning", BasePrice: 800, Active: true}

	got := e.BookingEstimate(svc, nil, nil)
	if got.Total != 900 {
		t.Fatalf("expected base plus fee 900, got %.2f", got.Total)
	}
	if len(got.FilterSurcharges) != 0 {
		t.Fatalf("expected no surcharges, got %+v", got.FilterSurcharges)
	}
}
