package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/service"
)

// Metrics — automation execution metrics
// @Summary     Execution metrics for the dashboard
// @Tags        metrics
// @Produce     json
// @Success     200 {object} service.Metrics
// @Failure     500 {object} APIError
// @Failure     503 {object} APIError
// @Router      /metrics [get]
func Metrics(svc *service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		m, err := svc.Metrics(c.Request().Context())
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return writeError(c, http.StatusServiceUnavailable, "Database connection timeout")
			}
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusOK, m)
	}
}
