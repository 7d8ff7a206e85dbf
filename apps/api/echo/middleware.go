package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/alfurqan/campusreg/services/metrics"
)

// metricsMiddleware counts the requests per route and final status.
func metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequests.WithLabelValues(ctx.Request().Method, route, strconv.Itoa(ctx.Response().Status)).Inc()
			return nil
		}
	}
}
