package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/cards"
	"github.com/opsview/dashboard-service/internal/http/dto"
)

// CardInspect — BI card metadata lookup
// @Summary     Inspect a BI card's title, native SQL and columns
// @Tags        cards
// @Accept      json
// @Produce     json
// @Param       request body dto.CardInspectRequest true "Card"
// @Success     200 {object} cards.Inspection
// @Failure     400 {object} APIError
// @Failure     502 {object} APIError
// @Failure     503 {object} APIError
// @Router      /cards/inspect [post]
func CardInspect(client *cards.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		if client == nil {
			return writeError(c, http.StatusServiceUnavailable, "Card inspection is not configured")
		}
		var req dto.CardInspectRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		inspection, err := client.Inspect(c.Request().Context(), req.CardID)
		if err != nil {
			return writeError(c, http.StatusBadGateway, "Card inspection failed")
		}
		return writeJSON(c, http.StatusOK, inspection)
	}
}
