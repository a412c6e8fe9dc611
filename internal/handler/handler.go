// Package handler is the first entry point for requests after the
// router. Handlers read dependencies off the shared application
// container and write HTTP responses.
package handler

import (
	"github.com/kumarvvr/salesnisha-server/internal/server"
)

// Handler is the base type embedded by concrete handlers so they can
// reach shared resources (config, logger, repositories).
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}
