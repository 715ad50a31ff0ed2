package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

const (
	// LatitudeMin and LatitudeMax bound valid latitudes in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0
	// LongitudeMin and LongitudeMax bound valid longitudes in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used for haversine distance.
	earthRadiusKm = 6371.0
)

// GeoPoint is an immutable latitude/longitude pair in decimal degrees.
//
// The point (0,0) is treated as "coordinates unknown": upstream platforms
// deliver 0/0 when the customer location could not be geocoded, and such
// orders are excluded from route optimization. Use IsZero to test for it.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(41.0082, 28.9784)
//	if err != nil {
//	    // out-of-range coordinates
//	}
//	km := p.DistanceTo(other)
type GeoPoint struct {
	latitude  float64
	longitude float64
}

// NewGeoPoint creates a GeoPoint with validated coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the coordinates are inside their valid ranges.
// Unlike most kernel value objects the zero value is valid: it is the
// documented "coordinates unknown" marker.
func (p GeoPoint) Validate() error {
	return errors.Join(
		validateRange("latitude", p.latitude, LatitudeMin, LatitudeMax),
		validateRange("longitude", p.longitude, LongitudeMin, LongitudeMax),
	)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsZero reports whether the point is the "coordinates unknown" marker.
func (p GeoPoint) IsZero() bool {
	return p.latitude == 0 && p.longitude == 0
}

// String implements fmt.Stringer for logging.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual reports whether two points have identical coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p == other
}

// DistanceTo returns the great-circle (haversine) distance to other in
// kilometers. The result is symmetric and zero for identical points.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	dLat := toRadians(other.latitude - p.latitude)
	dLng := toRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.latitude))*math.Cos(toRadians(other.latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if err := validateRange("latitude", latitude, LatitudeMin, LatitudeMax); err != nil {
		return err
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if err := validateRange("longitude", longitude, LongitudeMin, LongitudeMax); err != nil {
		return err
	}
	p.longitude = longitude
	return nil
}

func validateRange(name string, value, minValue, maxValue float64) error {
	if value < minValue || value > maxValue {
		return errs.NewValueIsOutOfRangeError(name, value, minValue, maxValue)
	}
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
