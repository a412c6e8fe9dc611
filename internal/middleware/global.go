package middleware

import (
	"errors"
	"net/http"

	"github.com/kumarvvr/salesnisha-server/internal/errs"
	"github.com/kumarvvr/salesnisha-server/internal/server"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// GlobalMiddlewares groups middleware applied to every route plus the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the global middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

// Recover returns Echo's panic recovery middleware.
func (g *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return echomw.Recover()
}

// RequestLogger returns Echo's request logger wired into zerolog: one
// log line per request, severity chosen by status class.
//
// When a handler returns an error the final status is written later by
// the global error handler, so the status logged here is derived from
// the error instead of v.Status.
func (g *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				var echoErr *echo.HTTPError
				if errors.As(v.Error, &echoErr) {
					status = echoErr.Code
				} else {
					status = errs.HTTPStatus(v.Error)
				}
			}

			logger := GetLogger(c).With().
				Str("uri", v.URI).
				Str("method", v.Method).
				Int("status", status).
				Dur("latency", v.Latency).
				Logger()

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error().Err(v.Error).Msg("API")
			case status >= http.StatusBadRequest:
				logger.Warn().Err(v.Error).Msg("API")
			default:
				logger.Info().Msg("API")
			}
			return nil
		},
	})
}

// errorBody is the JSON shape every error response uses.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorHandler is the global Echo error handler. It translates
// application error kinds into HTTP responses and keeps internal fault
// detail out of response bodies.
func (g *GlobalMiddlewares) ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := errs.HTTPStatus(err)
		message := err.Error()

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			status = echoErr.Code
			if m, ok := echoErr.Message.(string); ok {
				message = m
			}
		}

		// Internal faults keep their detail in logs, not responses.
		if status >= http.StatusInternalServerError {
			message = http.StatusText(status)
		}

		body := errorBody{
			Code:    errs.KindOf(err).String(),
			Message: message,
			Status:  status,
		}

		if writeErr := c.JSON(status, body); writeErr != nil {
			GetLogger(c).Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
