package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/core/ports"
)

// WriteRequest is the parsed body of a create or edit request: a
// verification block identifying the caller and a location block carrying
// the mutable fields.
type WriteRequest struct {
	Verification *domain.Credentials   `json:"verification"`
	Location     *domain.LocationInput `json:"location"`
}

// MutationService runs the write pipeline: validate, authorize, persist,
// relabel. Each stage short-circuits to a specific sentinel error.
type MutationService struct {
	locations ports.LocationRepository
	verifier  ports.Verifier
	events    ports.EventPublisher
	cache     ports.CacheService
}

// NewMutationService creates a new MutationService. events and cache may be
// nil; publishing and invalidation are then skipped.
func NewMutationService(locations ports.LocationRepository, verifier ports.Verifier, events ports.EventPublisher, cache ports.CacheService) *MutationService {
	return &MutationService{locations: locations, verifier: verifier, events: events, cache: cache}
}

// Create verifies the caller, assigns ownership from the verified identity,
// and persists a new location together with its labels. The body must not
// carry an id; the server assigns one.
func (s *MutationService) Create(ctx context.Context, req *WriteRequest) (*domain.Location, error) {
	if req == nil || req.Verification == nil || req.Location == nil {
		return nil, fmt.Errorf("missing verification or location block: %w", domain.ErrMalformedPayload)
	}
	if req.Location.ID != nil {
		return nil, fmt.Errorf("id must not be set on create: %w", domain.ErrMalformedPayload)
	}

	if err := s.verifier.Verify(ctx, req.Verification.UserID, req.Verification.SessionKey); err != nil {
		return nil, err
	}

	loc := buildLocation(req.Location)
	loc.UserID = req.Verification.UserID

	created, err := s.locations.Create(ctx, loc)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishLocationCreated(ctx, created); err != nil {
			slog.Warn("publish location created", "id", created.ID, "error", err)
		}
	}

	return created, nil
}

// Edit resolves the target location, verifies the caller, requires the
// verified identity to match the record's owner, and persists the update.
// Label associations are replaced only when the body supplies them.
func (s *MutationService) Edit(ctx context.Context, id int64, req *WriteRequest) (*domain.Location, error) {
	if req == nil || req.Verification == nil || req.Location == nil {
		return nil, fmt.Errorf("missing verification or location block: %w", domain.ErrMalformedPayload)
	}

	existing, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Location.ID != nil {
		return nil, fmt.Errorf("id must not be set in the body: %w", domain.ErrMalformedPayload)
	}

	if err := s.verifier.Verify(ctx, req.Verification.UserID, req.Verification.SessionKey); err != nil {
		return nil, err
	}

	// The record exists but may not be modified by this caller; that is a
	// credentials failure, not a not-found.
	if existing.UserID != req.Verification.UserID {
		return nil, fmt.Errorf("caller does not own location %d: %w", id, domain.ErrCredentialsRejected)
	}

	loc := buildLocation(req.Location)
	loc.ID = id
	loc.UserID = existing.UserID

	updated, err := s.locations.Update(ctx, loc)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, fmt.Sprintf("locations:id:%d", id))
	}
	if s.events != nil {
		if err := s.events.PublishLocationUpdated(ctx, updated); err != nil {
			slog.Warn("publish location updated", "id", updated.ID, "error", err)
		}
	}

	return updated, nil
}

// buildLocation maps an input block to a domain record. Nil category/tag
// slices stay nil so the repository can tell "not supplied" apart from
// "replace with the empty set".
func buildLocation(in *domain.LocationInput) *domain.Location {
	loc := &domain.Location{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Coordinate:  in.Coordinate(),
		Website:     in.Website,
		Telephone:   in.Telephone,
	}
	if in.Categories != nil {
		loc.Categories = make([]domain.Category, 0, len(in.Categories))
		for _, name := range in.Categories {
			loc.Categories = append(loc.Categories, domain.Category{Name: name})
		}
	}
	if in.Tags != nil {
		loc.Tags = make([]domain.Tag, 0, len(in.Tags))
		for _, name := range in.Tags {
			loc.Tags = append(loc.Tags, domain.Tag{Name: name})
		}
	}
	return loc
}
