package domain

import "errors"

// Sentinel errors shared between usecases and adapters. The HTTP layer maps
// each one to a stable machine-readable reason code; adapters wrap them with
// fmt.Errorf("...: %w", err) so callers can match with errors.Is.
var (
	// ErrNotFound means the requested location does not exist.
	ErrNotFound = errors.New("location not found")

	// ErrDuplicateLocation means a uniqueness constraint (name, address,
	// or coordinate pair) was violated on persist.
	ErrDuplicateLocation = errors.New("duplicate location")

	// ErrMalformedPayload means the request body was unparseable, missed a
	// required block, or carried a disallowed field such as location.id.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrMissingUserID means the verification block carried no user id.
	// Detected locally, before any oracle round-trip.
	ErrMissingUserID = errors.New("missing user id")

	// ErrMissingSessionKey means the verification block carried no session
	// key. Detected locally, before any oracle round-trip.
	ErrMissingSessionKey = errors.New("missing session key")

	// ErrCredentialsRejected means the oracle denied the credentials, or the
	// caller is not the owner of the record being edited.
	ErrCredentialsRejected = errors.New("credentials rejected")

	// ErrVerifierUnavailable means the verification oracle could not be
	// reached or timed out. Retryable, unlike a rejection.
	ErrVerifierUnavailable = errors.New("verification service unavailable")
)
