// Package kernel holds the shared value objects of the domain model.
package kernel

import (
	"errors"
	"fmt"
	"math"

	"smartdelivery/internal/pkg/errs"
)

// earthRadiusKM is the mean Earth radius used for great-circle distances.
const earthRadiusKM = 6371.0

// GeoPoint is an immutable WGS84 coordinate pair with validated bounds.
// The zero value is the null island point (0, 0), which the original data
// model also uses as "location not reported yet" for drivers, so no
// constructor guard is applied here.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(18.0858, -15.9785)
//	if err != nil {
//	    // latitude or longitude out of bounds
//	}
type GeoPoint struct {
	lat  float64
	long float64
}

// NewGeoPoint creates a GeoPoint after validating that latitude is within
// [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(lat, long float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude",
			fmt.Errorf("%v is not within [-90, 90]", lat))
	}
	if long < -180 || long > 180 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude",
			fmt.Errorf("%v is not within [-180, 180]", long))
	}
	return GeoPoint{lat: lat, long: long}, nil
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.long
}

// IsZero reports whether the point is the unset (0, 0) location.
func (p GeoPoint) IsZero() bool {
	return p.lat == 0 && p.long == 0
}

// IsEqual compares two points by exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.long == other.long
}

// DistanceKMTo returns the great-circle distance in kilometers between p and
// other, computed with the haversine formula. The result is a pure function
// of the two coordinate pairs and is symmetric.
func (p GeoPoint) DistanceKMTo(other GeoPoint) float64 {
	dLat := radians(other.lat - p.lat)
	dLong := radians(other.long - p.long)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(p.lat))*math.Cos(radians(other.lat))*
			math.Sin(dLong/2)*math.Sin(dLong/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.7f, %.7f)", p.lat, p.long)
}

// MustGeoPoint is a test helper that panics on invalid coordinates.
func MustGeoPoint(lat, long float64) GeoPoint {
	p, err := NewGeoPoint(lat, long)
	if err != nil {
		panic(errors.Join(fmt.Errorf("MustGeoPoint(%v, %v)", lat, long), err))
	}
	return p
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
