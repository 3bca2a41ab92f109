package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ddfriends/places/internal/core/domain"
)

// Stable machine-readable reason codes. Clients branch on these tokens, so
// they must never change once published.
const (
	ReasonIncorrectAccessMethod = "incorrect_access_method"
	ReasonErroneousValue        = "erroneous_value"
	ReasonLocationNotFound      = "location_not_found"
	ReasonIncorrectSessionKey   = "incorrect_session_key"
	ReasonIncorrectUserID       = "incorrect_user_id"
	ReasonMalformedJSON         = "malformed_json"
	ReasonIncorrectCredentials  = "incorrect_credentials"
	ReasonDuplicateLocation     = "duplicate_location"
	ReasonVerifierUnavailable   = "verification_service_unavailable"
	ReasonNotFound              = "not_found"
	ReasonInternalError         = "internal_error"
)

type successEnvelope struct {
	Success  bool        `json:"success"`
	Response interface{} `json:"response"`
}

type failureEnvelope struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
}

// respond writes the uniform success envelope.
func respond(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(successEnvelope{Success: true, Response: payload})
}

// fail writes the uniform failure envelope.
func fail(c *fiber.Ctx, status int, reason string) error {
	return c.Status(status).JSON(failureEnvelope{Success: false, Reason: reason})
}

// failFromError maps a domain sentinel to its reason code and HTTP status.
func failFromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, ReasonLocationNotFound)
	case errors.Is(err, domain.ErrMalformedPayload):
		return fail(c, fiber.StatusBadRequest, ReasonMalformedJSON)
	case errors.Is(err, domain.ErrMissingUserID):
		return fail(c, fiber.StatusUnauthorized, ReasonIncorrectUserID)
	case errors.Is(err, domain.ErrMissingSessionKey):
		return fail(c, fiber.StatusUnauthorized, ReasonIncorrectSessionKey)
	case errors.Is(err, domain.ErrCredentialsRejected):
		return fail(c, fiber.StatusForbidden, ReasonIncorrectCredentials)
	case errors.Is(err, domain.ErrVerifierUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, ReasonVerifierUnavailable)
	case errors.Is(err, domain.ErrDuplicateLocation):
		return fail(c, fiber.StatusConflict, ReasonDuplicateLocation)
	default:
		return fail(c, fiber.StatusInternalServerError, ReasonInternalError)
	}
}

// ErrorHandler is the app-level fiber error handler; it keeps unrouted
// requests and wrong verbs inside the envelope contract.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusMethodNotAllowed:
			return fail(c, fiber.StatusMethodNotAllowed, ReasonIncorrectAccessMethod)
		case fiber.StatusNotFound:
			return fail(c, fiber.StatusNotFound, ReasonNotFound)
		}
		return fail(c, fiberErr.Code, ReasonInternalError)
	}
	return fail(c, fiber.StatusInternalServerError, ReasonInternalError)
}
