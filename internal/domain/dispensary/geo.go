package dispensary

import "math"

// earthRadiusMiles is the Earth radius used for great-circle distances.
const earthRadiusMiles = 3958.8

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceMiles returns the great-circle distance between two points using
// the haversine formula, in miles.
func DistanceMiles(a, b Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Pow(math.Sin(dLng/2), 2)

	return 2 * earthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
