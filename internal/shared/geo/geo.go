package geo

import "math"

const earthRadiusM = 6371000

// HaversineKm returns the great-circle distance in kilometers between
// two latitude/longitude points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c / 1000
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies within real-world coordinate bounds.
func (p Point) Valid() bool {
	return math.Abs(p.Lat) <= 90 && math.Abs(p.Lng) <= 180
}

// PathDistanceM sums pairwise haversine distances along a GPS path, in
// meters. Out-of-range samples are skipped rather than rejected: GPS
// units emit garbage points and a single bad sample must not poison the
// whole track.
func PathDistanceM(points []Point) float64 {
	var total float64
	var prev *Point
	for i := range points {
		p := points[i]
		if !p.Valid() {
			continue
		}
		if prev != nil {
			total += HaversineKm(prev.Lat, prev.Lng, p.Lat, p.Lng) * 1000
		}
		prev = &points[i]
	}
	return total
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
