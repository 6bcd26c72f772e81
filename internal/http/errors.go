package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/opsview/dashboard-service/internal/auth"
	"github.com/opsview/dashboard-service/internal/brokerage"
	"github.com/opsview/dashboard-service/internal/http/dto"
	"github.com/opsview/dashboard-service/internal/service"
)

// MapError translates domain and DTO errors into an HTTP status and
// APIError body.
func MapError(err error) (int, APIError) {
	switch {
	// DTO validation
	case errors.Is(err, dto.ErrIDTokenRequired):
		return http.StatusBadRequest, apiError("ID token is required")
	case errors.Is(err, dto.ErrTransactionIDsRequired):
		return http.StatusBadRequest, apiError("transactionIds array is required")
	case errors.Is(err, dto.ErrTooManyTransactions):
		return http.StatusBadRequest, apiError("Maximum 20 transactions per request")
	case errors.Is(err, dto.ErrYentaIDRequired):
		return http.StatusBadRequest, apiError("yentaId string is required")
	case errors.Is(err, dto.ErrNameRequired):
		return http.StatusBadRequest, apiError("Name is required")
	case errors.Is(err, dto.ErrIsActiveRequired):
		return http.StatusBadRequest, apiError("is_active must be a boolean value")
	case errors.Is(err, dto.ErrQueryRequired):
		return http.StatusBadRequest, apiError("query string is required")
	case errors.Is(err, dto.ErrCardIDRequired):
		return http.StatusBadRequest, apiError("Card ID is required")

	// Session
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpired):
		return http.StatusUnauthorized, apiError("Invalid token")

	// Domain
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, apiError("Not found")

	// Upstream
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, apiError("Upstream request timed out")
	}

	var ue *brokerage.UpstreamError
	if errors.As(err, &ue) {
		return http.StatusBadGateway, apiError("Upstream API error")
	}
	return http.StatusInternalServerError, apiError("Internal server error")
}
