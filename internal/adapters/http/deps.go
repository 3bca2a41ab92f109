package http

import (
	"github.com/nats-io/nats.go"

	"github.com/ddfriends/places/internal/adapters/postgres"
	"github.com/ddfriends/places/internal/adapters/valkey"
	"github.com/ddfriends/places/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Locations *usecases.LocationService
	Mutations *usecases.MutationService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache

	// DefaultRadius is applied when a nearby search omits the radius
	// parameter, in meters.
	DefaultRadius float64
}
