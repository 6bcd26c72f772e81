package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/tracker"
)

const (
	defaultAgileID     = "124-333"
	defaultIssueFields = "idReadable,summary,description,created,updated," +
		"reporter(login,fullName),customFields(name,value(name,login,fullName,presentation))"
	defaultIssuesTop = "50"
)

func writeTrackerResponse(c echo.Context, data json.RawMessage, err error) error {
	if err != nil {
		var se *tracker.StatusError
		if errors.As(err, &se) {
			// Forward the tracker's own status so the UI can
			// distinguish bad queries from outages.
			if json.Valid([]byte(se.Body)) {
				return c.JSONBlob(se.Status, []byte(se.Body))
			}
			return writeError(c, se.Status, se.Error())
		}
		status, body := MapError(err)
		return writeJSON(c, status, body)
	}
	return c.JSONBlob(http.StatusOK, data)
}

// TrackerSprint — current sprint of an agile board
// @Summary     Issues in the current sprint of an agile board
// @Tags        tracker
// @Produce     json
// @Param       agileId query string false "Agile board id"
// @Param       fields  query string false "Tracker fields selector"
// @Success     200 {array} object
// @Failure     502 {object} APIError
// @Router      /tracker/current-sprint [get]
func TrackerSprint(client *tracker.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		agileID := c.QueryParam("agileId")
		if agileID == "" {
			agileID = defaultAgileID
		}
		fields := c.QueryParam("fields")
		if fields == "" {
			fields = defaultIssueFields
		}
		data, err := client.CurrentSprintIssues(c.Request().Context(), agileID, fields)
		return writeTrackerResponse(c, data, err)
	}
}

// TrackerIssues — list issues with an optional tracker query
// @Summary     List tracker issues
// @Tags        tracker
// @Produce     json
// @Param       fields query string false "Tracker fields selector"
// @Param       top    query string false "Max results"
// @Param       query  query string false "Tracker search query"
// @Success     200 {array} object
// @Failure     502 {object} APIError
// @Router      /tracker/issues [get]
func TrackerIssues(client *tracker.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		fields := c.QueryParam("fields")
		if fields == "" {
			fields = defaultIssueFields
		}
		top := c.QueryParam("top")
		if top == "" {
			top = defaultIssuesTop
		}
		data, err := client.Issues(c.Request().Context(), fields, top, c.QueryParam("query"))
		return writeTrackerResponse(c, data, err)
	}
}

// TrackerIssue — one issue by readable id
// @Summary     Fetch one tracker issue
// @Tags        tracker
// @Produce     json
// @Param       id     path  string true  "Issue id"
// @Param       fields query string false "Tracker fields selector"
// @Success     200 {object} object
// @Failure     404 {object} APIError
// @Router      /tracker/issues/{id} [get]
func TrackerIssue(client *tracker.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return writeError(c, http.StatusBadRequest, "issue id required")
		}
		fields := c.QueryParam("fields")
		if fields == "" {
			fields = defaultIssueFields
		}
		data, err := client.Issue(c.Request().Context(), id, fields)
		return writeTrackerResponse(c, data, err)
	}
}

// TrackerCreateIssue — file a new issue with requestor fallback
// @Summary     Create a tracker issue
// @Tags        tracker
// @Accept      json
// @Produce     json
// @Param       request body tracker.IssueDraft true "Issue draft"
// @Success     200 {object} object
// @Failure     400 {object} APIError
// @Failure     502 {object} APIError
// @Router      /tracker/issues [post]
func TrackerCreateIssue(client *tracker.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var draft tracker.IssueDraft
		if err := c.Bind(&draft); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if strings.TrimSpace(draft.Summary) == "" {
			return writeError(c, http.StatusBadRequest, "summary is required")
		}
		data, err := client.CreateIssue(c.Request().Context(), draft)
		return writeTrackerResponse(c, data, err)
	}
}

// TrackerFieldValues — value bundle of a project custom field
// @Summary     List the allowed values of a project custom field
// @Tags        tracker
// @Produce     json
// @Param       projectId path string true "Project id"
// @Param       fieldName path string true "Custom field name"
// @Success     200 {array} object
// @Failure     502 {object} APIError
// @Router      /tracker/projects/{projectId}/custom-fields/{fieldName} [get]
func TrackerFieldValues(client *tracker.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		project := strings.TrimSpace(c.Param("projectId"))
		field := strings.TrimSpace(c.Param("fieldName"))
		if project == "" || field == "" {
			return writeError(c, http.StatusBadRequest, "project and field are required")
		}
		data, err := client.CustomFieldValues(c.Request().Context(), project, field)
		return writeTrackerResponse(c, data, err)
	}
}

// TrackerProxy forwards any other tracker API call verbatim, keeping
// the bearer token server-side.
// @Summary     Generic tracker API passthrough
// @Tags        tracker
// @Produce     json
// @Success     200 {object} object
// @Failure     502 {object} APIError
// @Router      /tracker/{path} [get]
func TrackerProxy(client *tracker.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		endpoint := "/api/" + c.Param("*")
		if q := c.Request().URL.RawQuery; q != "" {
			endpoint += "?" + q
		}
		var body any
		if c.Request().Body != nil {
			b, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return writeError(c, http.StatusBadRequest, "malformed request")
			}
			if len(b) > 0 {
				if !json.Valid(b) {
					return writeError(c, http.StatusBadRequest, "malformed request")
				}
				body = json.RawMessage(b)
			}
		}
		data, err := client.Request(c.Request().Context(), c.Request().Method, endpoint, body)
		return writeTrackerResponse(c, data, err)
	}
}
