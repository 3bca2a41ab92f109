package ports

import (
	"context"

	"github.com/ddfriends/places/internal/core/domain"
)

// LocationFilter narrows a location query. Every field is optional; filters
// combine as a conjunction. An unknown category or tag name yields an empty
// result set, not an error.
type LocationFilter struct {
	UserID   string         // exact match on the owning user
	Name     string         // case-insensitive substring match
	Category string         // case-insensitive exact match on a category name
	Tag      string         // case-insensitive exact match on a tag name
	Bounds   *domain.Bounds // latitude/longitude range filter
	Limit    int            // hard cap on the result count
}

// LocationRepository persists locations together with their labels.
//
// Create and Update run the scalar write and the label replacement in one
// failure-atomic unit; a uniqueness violation on name, address, or the
// coordinate pair surfaces as domain.ErrDuplicateLocation.
type LocationRepository interface {
	Find(ctx context.Context, filter LocationFilter) ([]domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	Update(ctx context.Context, loc *domain.Location) (*domain.Location, error)
}
