package domain

import (
	"time"
)

// Category is a label shared across locations (e.g. Cafe, Restaurant).
// The case-sensitive name is its identity; categories are created on first
// reference during a write and never deleted.
type Category struct {
	Name string `json:"name"`
}

// Tag is a free-form label shared across locations. Like Category, the
// case-sensitive name is the primary key.
type Tag struct {
	Name string `json:"name"`
}

// Location is a registered point of interest.
type Location struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	UserID      string     `json:"user_id"`
	Coordinate  *GeoPoint  `json:"coordinate,omitempty"`
	Website     string     `json:"website,omitempty"`
	Telephone   string     `json:"telephone,omitempty"`
	Categories  []Category `json:"categories"`
	Tags        []Tag      `json:"tags"`
	Distance    *float64   `json:"distance,omitempty"` // computed field, nearby search only
	CreatedAt   time.Time  `json:"created_at"`
}

// Credentials is the per-request verification block on write requests.
// It is checked against the verification oracle and never persisted.
type Credentials struct {
	UserID     string `json:"user_id"`
	SessionKey string `json:"session_key"`
}

// LocationInput carries the mutable fields of a write request body.
// ID is a pointer so that its mere presence in the body can be rejected:
// the identifier is always assigned by the server (create) or taken from
// the route (edit), never from the payload.
type LocationInput struct {
	ID          *int64   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Website     string   `json:"website"`
	Telephone   string   `json:"telephone"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
}

// Coordinate returns the input's coordinate, or nil when either component
// is absent.
func (in *LocationInput) Coordinate() *GeoPoint {
	if in.Latitude == nil || in.Longitude == nil {
		return nil
	}
	return &GeoPoint{Lat: *in.Latitude, Lon: *in.Longitude}
}
