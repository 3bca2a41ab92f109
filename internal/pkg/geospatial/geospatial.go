package geospatial

import "math"

// EarthRadius is the WGS 84 equatorial radius in meters.
const EarthRadius = 6378137.0

// SearchBounds computes an axis-aligned bounding rectangle in degrees that
// conservatively contains a circle of radiusMeters around (lat, lon), using
// the small-angle approximation. The box is a fast pre-filter, not a precise
// membership test: it degrades towards the poles (cos lat → 0) and does not
// wrap across the antimeridian.
func SearchBounds(radiusMeters, lat, lon float64) (maxLat, maxLon, minLat, minLon float64) {
	maxLat, maxLon = offset(radiusMeters, lat, lon)
	minLat, minLon = offset(-radiusMeters, lat, lon)
	return maxLat, maxLon, minLat, minLon
}

func offset(r, lat, lon float64) (float64, float64) {
	dLat := r / EarthRadius
	dLon := r / (EarthRadius * math.Cos(math.Pi*lat/180))
	return lat + dLat*180/math.Pi, lon + dLon*180/math.Pi
}

// Haversine calculates the great-circle distance in meters between two
// points. Pure and deterministic; non-finite input yields NaN.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadius * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
