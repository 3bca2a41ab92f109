package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/core/usecases"
	"github.com/ddfriends/places/internal/pkg/metrics"
)

// FindLocationsHandler returns locations matching the optional query
// filters user_id, name, category, and tag.
func FindLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locs, err := deps.Locations.Find(c.Context(), usecases.FindQuery{
			UserID:   c.Query("user_id"),
			Name:     c.Query("name"),
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
		})
		if err != nil {
			return failFromError(c, err)
		}
		if locs == nil {
			locs = []domain.Location{}
		}

		metrics.SearchResults.WithLabelValues("find").Observe(float64(len(locs)))
		c.Set("Cache-Control", "public, max-age=60")
		return respond(c, fiber.StatusOK, locs)
	}
}

// FindNearbyHandler returns locations within a radius of a coordinate, each
// annotated with its distance in meters. latitude and longitude are
// required; radius falls back to the configured default. Any non-numeric
// value rejects the whole request.
func FindNearbyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, ReasonErroneousValue)
		}
		lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, ReasonErroneousValue)
		}

		radius := deps.DefaultRadius
		if raw := c.Query("radius"); raw != "" {
			radius, err = strconv.ParseFloat(raw, 64)
			if err != nil || radius <= 0 {
				return fail(c, fiber.StatusBadRequest, ReasonErroneousValue)
			}
		}

		locs, err := deps.Locations.FindNearby(c.Context(), lat, lon, radius)
		if err != nil {
			return failFromError(c, err)
		}
		if locs == nil {
			locs = []domain.Location{}
		}

		metrics.SearchResults.WithLabelValues("nearby").Observe(float64(len(locs)))
		c.Set("Cache-Control", "public, max-age=60")
		return respond(c, fiber.StatusOK, locs)
	}
}

// GetLocationHandler returns a single location by identifier.
func GetLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			// A non-numeric identifier cannot name any record.
			return fail(c, fiber.StatusNotFound, ReasonLocationNotFound)
		}

		loc, err := deps.Locations.GetByID(c.Context(), id)
		if err != nil {
			return failFromError(c, err)
		}

		c.Set("Cache-Control", "public, max-age=300")
		return respond(c, fiber.StatusOK, loc)
	}
}

// CreateLocationHandler registers a new location. The body carries a
// verification block and a location block; the body must not set an id and
// ownership is taken from the verified identity.
func CreateLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req usecases.WriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, ReasonMalformedJSON)
		}

		loc, err := deps.Mutations.Create(c.Context(), &req)
		if err != nil {
			return failFromError(c, err)
		}

		metrics.LocationsCreated.Inc()
		return respond(c, fiber.StatusCreated, loc)
	}
}

// EditLocationHandler updates an existing location in place. The identifier
// comes from the route; the caller must be the record's owner.
func EditLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return fail(c, fiber.StatusNotFound, ReasonLocationNotFound)
		}

		var req usecases.WriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, ReasonMalformedJSON)
		}

		loc, err := deps.Mutations.Edit(c.Context(), id, &req)
		if err != nil {
			return failFromError(c, err)
		}

		metrics.LocationsEdited.Inc()
		return respond(c, fiber.StatusOK, loc)
	}
}
