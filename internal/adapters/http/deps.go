package http

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/core/usecases"
)

// Pinger is a dependency that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Locations  *usecases.LocationService
	Navigation *usecases.NavigationService
	Buildings  *usecases.BuildingDirectory
	Auth       *AdminAuth
	Sheet      ports.LocationSource // optional; saved locations are mirrored to it
	NATS       *nats.Conn
	DB         Pinger
	Cache      Pinger
}
