package domain

// GeoPoint represents a geographic coordinate (WGS 84), decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Bounds represents a geographic bounding box used as a range pre-filter.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}
