package search

import (
	"math"

	"localserve/models"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// ValidateCoordinates rejects latitudes outside [-90,90] and longitudes
// outside [-180,180].
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return models.NewValidationError("latitude", "must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return models.NewValidationError("longitude", "must be between -180 and 180")
	}
	return nil
}

// Distance computes the great-circle distance in kilometres between two
// coordinate pairs using the spherical law of cosines. The acos argument is
// clamped to [-1,1]: floating-point overshoot for near-identical points would
// otherwise yield NaN.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := ValidateCoordinates(lat1, lon1); err != nil {
		return 0, err
	}
	if err := ValidateCoordinates(lat2, lon2); err != nil {
		return 0, err
	}

	rad := math.Pi / 180
	phi1 := lat1 * rad
	phi2 := lat2 * rad
	dLambda := (lon2 - lon1) * rad

	arg := math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda) + math.Sin(phi1)*math.Sin(phi2)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return earthRadiusKm * math.Acos(arg), nil
}
