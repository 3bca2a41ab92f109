package ports

import (
	"context"

	"github.com/ddfriends/places/internal/core/domain"
)

// Verifier confirms a claimed user identity against the verification oracle.
//
// Verify returns nil when the oracle authorizes the pair. Failure modes are
// distinguished by sentinel: domain.ErrMissingUserID and
// domain.ErrMissingSessionKey fail fast without I/O,
// domain.ErrCredentialsRejected means the oracle denied the pair, and
// domain.ErrVerifierUnavailable means it could not be reached in time.
type Verifier interface {
	Verify(ctx context.Context, userID, sessionKey string) error
}

// EventPublisher publishes location change events to a message broker.
type EventPublisher interface {
	PublishLocationCreated(ctx context.Context, loc *domain.Location) error
	PublishLocationUpdated(ctx context.Context, loc *domain.Location) error
}

// CacheService provides read-through caching for the read endpoints.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
