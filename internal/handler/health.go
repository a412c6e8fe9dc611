package handler

import (
	"net/http"
	"time"

	"github.com/kumarvvr/salesnisha-server/internal/middleware"
	"github.com/kumarvvr/salesnisha-server/internal/server"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the health endpoint used by load balancers and
// uptime monitors.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(s)}
}

// healthResponse is the fixed success payload, plus a database
// sub-check.
type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Database    bool      `json:"database"`
}

// CheckHealth reports service liveness. It always answers 200 with
// status "ok": the database sub-check runs a trivial round-trip query
// whose result is a boolean in the body, and a pool fault is never
// propagated to the caller.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	dbUp := h.server.Repos.HealthCheck(c.Request().Context())
	if !dbUp {
		middleware.GetLogger(c).Warn().Msg("database health check failed")
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Database:    dbUp,
	})
}
