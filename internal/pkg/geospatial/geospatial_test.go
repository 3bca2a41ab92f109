package geospatial

import (
	"math"
	"testing"
)

func TestSearchBounds_ContainsCenter(t *testing.T) {
	centers := []struct {
		lat, lon float64
	}{
		{51.0250869, 13.7210005}, // Dresden
		{43.263, -2.935},         // Bilbao
		{-33.8688, 151.2093},     // Sydney
		{0, 0},
		{79.9, 12.0}, // high latitude, still below the 80° cutoff
	}

	for _, c := range centers {
		for _, radius := range []float64{1, 500, 3000, 100000} {
			maxLat, maxLon, minLat, minLon := SearchBounds(radius, c.lat, c.lon)
			if !(maxLat > c.lat && c.lat > minLat) {
				t.Errorf("lat bounds at (%v,%v) r=%v: %v < %v < %v violated",
					c.lat, c.lon, radius, minLat, c.lat, maxLat)
			}
			if !(maxLon > c.lon && c.lon > minLon) {
				t.Errorf("lon bounds at (%v,%v) r=%v: %v < %v < %v violated",
					c.lat, c.lon, radius, minLon, c.lon, maxLon)
			}
		}
	}
}

func TestSearchBounds_WidensWithLatitude(t *testing.T) {
	// The longitude span must grow as the circle moves towards the pole.
	_, maxLonEq, _, minLonEq := SearchBounds(1000, 0, 0)
	_, maxLonHi, _, minLonHi := SearchBounds(1000, 60, 0)
	if (maxLonHi - minLonHi) <= (maxLonEq - minLonEq) {
		t.Errorf("expected wider lon span at 60° (%v) than at 0° (%v)",
			maxLonHi-minLonHi, maxLonEq-minLonEq)
	}
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	points := [][2]float64{
		{51.0250869, 13.7210005},
		{0, 0},
		{-45.5, -170.2},
	}
	for _, p := range points {
		if d := Haversine(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Haversine(p, p) = %v, want 0 for %v", d, p)
		}
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	d1 := Haversine(51.0250869, 13.7210005, 43.263, -2.935)
	d2 := Haversine(43.263, -2.935, 51.0250869, 13.7210005)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversine_DresdenFixture(t *testing.T) {
	// Studentencafé Ascii to Turtle Bay, roughly 3 km apart.
	d := Haversine(51.0250869, 13.7210005, 51.0516273, 13.732316)
	if d < 3000 || d > 3100 {
		t.Errorf("expected 3000-3100 m, got %v", d)
	}
}
