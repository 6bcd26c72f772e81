package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusError is a non-2xx answer from the tracker API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tracker API error: %d %s", e.Status, http.StatusText(e.Status))
}

// retryable user errors are 4xx: the request was understood but the
// referenced entity (typically a user login) does not exist.
func (e *StatusError) retryableUserError() bool {
	return e.Status >= 400 && e.Status < 500
}

// Client proxies requests to the external issue tracker with a
// pre-bound base URL and bearer token.
type Client struct {
	baseURL   string
	token     string
	orgDomain string
	httpc     *http.Client
}

func NewClient(baseURL, token, orgDomain string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		orgDomain: orgDomain,
		httpc:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Request performs one tracker API call and returns the raw JSON
// response for passthrough to the browser.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("tracker: %s %s -> %d", method, endpoint, resp.StatusCode)
		return nil, &StatusError{Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

// CurrentSprintIssues lists the current sprint of one agile board.
func (c *Client) CurrentSprintIssues(ctx context.Context, agileID, fields string) (json.RawMessage, error) {
	endpoint := "/api/agiles/" + agileID + "/sprints/current/issues?fields=" + url.QueryEscape(fields)
	return c.Request(ctx, http.MethodGet, endpoint, nil)
}

// Issues lists issues, optionally filtered by a tracker query string.
func (c *Client) Issues(ctx context.Context, fields, top, query string) (json.RawMessage, error) {
	endpoint := "/api/issues?fields=" + url.QueryEscape(fields) + "&$top=" + url.QueryEscape(top)
	if query != "" {
		endpoint += "&query=" + url.QueryEscape(query)
	}
	return c.Request(ctx, http.MethodGet, endpoint, nil)
}

// Issue fetches one issue by its readable id.
func (c *Client) Issue(ctx context.Context, issueID, fields string) (json.RawMessage, error) {
	endpoint := "/api/issues/" + url.PathEscape(issueID) + "?fields=" + url.QueryEscape(fields)
	return c.Request(ctx, http.MethodGet, endpoint, nil)
}

// CustomFieldValues returns the value bundle of a project custom
// field, or an empty list when the field has no bundle.
func (c *Client) CustomFieldValues(ctx context.Context, projectID, fieldName string) (json.RawMessage, error) {
	endpoint := "/api/admin/projects/" + url.PathEscape(projectID) +
		"/customFields?fields=field(fieldType(valueType),name),bundle(values(name))" +
		"&query=" + url.QueryEscape("field: {"+fieldName+"}")
	data, err := c.Request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var fields []struct {
		Bundle struct {
			Values json.RawMessage `json:"values"`
		} `json:"bundle"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 && len(fields[0].Bundle.Values) > 0 {
		return fields[0].Bundle.Values, nil
	}
	return json.RawMessage("[]"), nil
}
