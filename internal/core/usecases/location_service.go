package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/core/ports"
	"github.com/ddfriends/places/internal/pkg/geospatial"
)

// FindQuery holds the optional criteria of a location search. Every field
// narrows the result set; empty fields are skipped.
type FindQuery struct {
	UserID   string
	Name     string
	Category string
	Tag      string
}

// LocationService handles the read side: filtered search, nearby search,
// and lookup by identifier.
type LocationService struct {
	locations  ports.LocationRepository
	cache      ports.CacheService
	maxResults int
}

// NewLocationService creates a new LocationService. maxResults caps every
// result set to bound response size.
func NewLocationService(locations ports.LocationRepository, cache ports.CacheService, maxResults int) *LocationService {
	if maxResults <= 0 {
		maxResults = 100
	}
	return &LocationService{locations: locations, cache: cache, maxResults: maxResults}
}

// Find returns locations matching the conjunction of the query's filters.
// An unknown category or tag name yields an empty slice, not an error.
func (s *LocationService) Find(ctx context.Context, q FindQuery) ([]domain.Location, error) {
	cacheKey := fmt.Sprintf("locations:find:%s:%s:%s:%s", q.UserID, q.Name, q.Category, q.Tag)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var locs []domain.Location
			if err := json.Unmarshal(data, &locs); err == nil {
				return locs, nil
			}
		}
	}

	locs, err := s.locations.Find(ctx, ports.LocationFilter{
		UserID:   q.UserID,
		Name:     q.Name,
		Category: q.Category,
		Tag:      q.Tag,
		Limit:    s.maxResults,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(locs); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return locs, nil
}

// FindNearby returns locations inside the bounding box around (lat, lon)
// for the given radius in meters, each annotated with its great-circle
// distance from the query point. The box is a conservative pre-filter, so
// returned distances can validly exceed the nominal radius near its corners.
func (s *LocationService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]domain.Location, error) {
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("search radius must be positive, got %v", radiusMeters)
	}

	maxLat, maxLon, minLat, minLon := geospatial.SearchBounds(radiusMeters, lat, lon)

	locs, err := s.locations.Find(ctx, ports.LocationFilter{
		Bounds: &domain.Bounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon},
		Limit:  s.maxResults,
	})
	if err != nil {
		return nil, err
	}

	for i := range locs {
		if c := locs[i].Coordinate; c != nil {
			d := geospatial.Haversine(lat, lon, c.Lat, c.Lon)
			locs[i].Distance = &d
		}
	}

	return locs, nil
}

// GetByID returns a single location with its resolved labels.
func (s *LocationService) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	cacheKey := fmt.Sprintf("locations:id:%d", id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var loc domain.Location
			if err := json.Unmarshal(data, &loc); err == nil {
				return &loc, nil
			}
		}
	}

	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(loc); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return loc, nil
}
