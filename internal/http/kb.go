package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/http/dto"
	"github.com/opsview/dashboard-service/internal/kb"
)

// KBSearch — knowledge-base article search
// @Summary     Search knowledge-base articles
// @Tags        kb
// @Accept      json
// @Produce     json
// @Param       request body dto.KBSearchRequest true "Search"
// @Success     200 {object} kb.SearchResult
// @Failure     400 {object} APIError
// @Failure     502 {object} APIError
// @Failure     503 {object} APIError
// @Router      /kb/search [post]
func KBSearch(client *kb.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		if client == nil {
			return writeError(c, http.StatusServiceUnavailable, "Knowledge base search is not configured")
		}
		var req dto.KBSearchRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		opts := kb.SearchOptions{
			PerPage:  req.PerPage,
			MaxPages: req.MaxPages,
			Locale:   req.Locale,
			NoBrands: req.Multibrand != nil && !*req.Multibrand,
		}
		result, err := client.Search(c.Request().Context(), req.Query, opts)
		if err != nil {
			return writeError(c, http.StatusBadGateway, "Knowledge base search failed")
		}
		return writeJSON(c, http.StatusOK, result)
	}
}
