package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/http/dto"
	"github.com/opsview/dashboard-service/internal/service"
)

// ListAutomations — automation control panel listing
// @Summary     List automations
// @Tags        automations
// @Produce     json
// @Success     200 {array} service.Automation
// @Failure     403 {object} APIError
// @Router      /automations [get]
func ListAutomations(svc *service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		automations, err := svc.Automations(c.Request().Context())
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		if automations == nil {
			automations = []service.Automation{}
		}
		return writeJSON(c, http.StatusOK, automations)
	}
}

// CreateAutomation — register a new automation (inactive by default)
// @Summary     Create an automation
// @Tags        automations
// @Accept      json
// @Produce     json
// @Param       request body dto.AutomationCreateRequest true "Automation"
// @Success     201 {object} service.Automation
// @Failure     400 {object} APIError
// @Failure     403 {object} APIError
// @Router      /automations [post]
func CreateAutomation(svc *service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.AutomationCreateRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		automation, err := svc.CreateAutomation(c.Request().Context(),
			strings.TrimSpace(req.Name), strings.TrimSpace(req.Initiative), strings.TrimSpace(req.Platform))
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusCreated, automation)
	}
}

// UpdateAutomation — toggle an automation's is_active flag
// @Summary     Update automation active state
// @Tags        automations
// @Accept      json
// @Produce     json
// @Param       id path string true "Automation ID"
// @Param       request body dto.AutomationUpdateRequest true "Update"
// @Success     200 {object} service.Automation
// @Failure     400 {object} APIError
// @Failure     403 {object} APIError
// @Failure     404 {object} APIError
// @Router      /automations/{id} [put]
func UpdateAutomation(svc *service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return writeError(c, http.StatusBadRequest, "id required")
		}
		var req dto.AutomationUpdateRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		automation, err := svc.SetAutomationActive(c.Request().Context(), id, *req.IsActive)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, http.StatusNotFound, "Automation with id "+id+" not found")
			}
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusOK, automation)
	}
}
