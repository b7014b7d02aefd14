package geo

import "math"

const earthRadiusKm = 6371.0

// Haversine computes the great-circle distance in kilometers between two
// coordinates given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm returns the distance from the caller's position to a target
// location, rounded to one decimal for display. It returns nil when the
// target is missing or is the unset sentinel - nil means "distance unknown,
// do not display", which is an expected outcome, not an error.
func DistanceKm(fromLat, fromLng float64, to *Point) *float64 {
	if to == nil || to.IsUnset() {
		return nil
	}
	d := RoundTenth(Haversine(fromLat, fromLng, to.Latitude, to.Longitude))
	return &d
}

// RoundTenth rounds half away from zero at the tenths digit.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
