package handler

import (
	"github.com/kumarvvr/salesnisha-server/internal/server"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around.
type Handlers struct {
	Health *HealthHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
	}
}
