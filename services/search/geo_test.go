package search

import (
	"errors"
	"math"
	"testing"

	"localserve/models"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	d, err := Distance(13.0827, 80.2707, 13.0827, 80.2707)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"chennai to bangalore", 13.0827, 80.2707, 12.9716, 77.5946},
		{"across equator", -1.2921, 36.8219, 1.3521, 103.8198},
		{"near antimeridian", 52.0, 179.9, 52.0, -179.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ab, err := Distance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ba, err := Distance(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(ab-ba) > 1e-9 {
				t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
			}
		})
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// One degree of latitude spans R*pi/180 km on a sphere.
	d, err := Distance(13.0, 80.0, 14.0, 80.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 6371.0 * math.Pi / 180
	if math.Abs(d-want) > 0.01 {
		t.Fatalf("expected %.4f km, got %.4f km", want, d)
	}
}

func TestDistanceStableNearZero(t *testing.T) {
	// Points this close can push the acos argument past 1 without clamping.
	d, err := Distance(13.0827, 80.2707, 13.0827, 80.27070000000001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(d) {
		t.Fatal("distance is NaN for near-identical points")
	}
	if d > 0.001 {
		t.Fatalf("expected near-zero distance, got %f", d)
	}
}

func TestDistanceRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"latitude too high", 91, 0, 0, 0},
		{"latitude too low", 0, 0, -90.5, 0},
		{"longitude too high", 0, 181, 0, 0},
		{"longitude too low", 0, 0, 0, -180.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var vErr *models.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}
