package router

import (
	"github.com/kumarvvr/salesnisha-server/internal/handler"

	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not business logic.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/status", h.Health.CheckHealth)
}
