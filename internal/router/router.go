// Package router initializes the HTTP router (using Echo).
//
// It registers the middleware stack and maps paths to their
// corresponding handlers.
package router

import (
	"github.com/kumarvvr/salesnisha-server/internal/handler"
	"github.com/kumarvvr/salesnisha-server/internal/middleware"
	"github.com/kumarvvr/salesnisha-server/internal/server"

	"github.com/labstack/echo/v4"
)

// New builds the Echo instance: global middleware first, then routes.
func New(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.ErrorHandler()

	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())

	registerSystemRoutes(e, h)

	return e
}
