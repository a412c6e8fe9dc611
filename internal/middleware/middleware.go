// Package middleware contains the Echo middleware stack: request
// correlation IDs, request-scoped loggers, request logging, recovery
// and the global error handler.
package middleware

import (
	"github.com/kumarvvr/salesnisha-server/internal/server"
)

// Middlewares groups all middleware components so router setup passes
// one object around instead of many.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components from the
// application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
