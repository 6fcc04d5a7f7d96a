package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Coordinate is an immutable WGS 84 point.
type Coordinate struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// DistanceKm returns the great-circle distance between a and b in kilometers
// using the haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	latDelta := radians(b.Latitude - a.Latitude)
	lonDelta := radians(b.Longitude - a.Longitude)

	h := math.Sin(latDelta/2)*math.Sin(latDelta/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(lonDelta/2)*math.Sin(lonDelta/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Project offsets origin by distanceKm along bearingRad (radians, clockwise
// from north is not assumed; the caller picks the convention) using an
// equirectangular approximation. Good enough for the few kilometers the
// synthetic generator scatters stores over.
func Project(origin Coordinate, bearingRad, distanceKm float64) Coordinate {
	latOffset := (distanceKm * math.Cos(bearingRad)) / 111.0
	lonOffset := (distanceKm * math.Sin(bearingRad)) / (111.0 * math.Cos(radians(origin.Latitude)))
	return Coordinate{
		Latitude:  origin.Latitude + latOffset,
		Longitude: origin.Longitude + lonOffset,
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
