package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// APIError is the stable error shape every endpoint answers with.
// Upstream detail stays in server logs; clients get the message only.
type APIError struct {
	Error     string      `json:"error"`
	Timestamp string      `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}

func apiError(message string) APIError {
	return APIError{Error: message, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

func writeJSON(c echo.Context, status int, v any) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(status, v)
}

func writeError(c echo.Context, status int, message string) error {
	return writeJSON(c, status, apiError(message))
}

func DefaultHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		_ = writeError(c, he.Code, msg)
		return
	}
	_ = writeError(c, http.StatusInternalServerError, "Internal server error")
}
