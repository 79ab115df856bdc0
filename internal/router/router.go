package router // route registration for the charter-booking API

import (
	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/handler"
	"github.com/harborline/charter-booking/internal/metrics"
)

// RegisterRoutes registers the unauthenticated operational endpoints: the
// health check used by load balancers and the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, m *metrics.Collector) {
	e.GET("/healthz", handler.Health)
	if m != nil {
		e.GET("/metrics", m.Handler())
	}
}
