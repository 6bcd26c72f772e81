package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsview/dashboard-service/internal/service"
)

type stubRepo struct {
	automations []service.Automation
	executions  []service.Execution
	err         error
	updateErr   error
}

func (s *stubRepo) ListAutomations(ctx context.Context) ([]service.Automation, error) {
	return s.automations, s.err
}

func (s *stubRepo) CreateAutomation(ctx context.Context, name, initiative, platform string) (service.Automation, error) {
	if s.err != nil {
		return service.Automation{}, s.err
	}
	return service.Automation{ID: "auto-1", Name: name, CreatedAt: time.Now()}, nil
}

func (s *stubRepo) UpdateAutomationActive(ctx context.Context, id string, isActive bool) (service.Automation, error) {
	if s.updateErr != nil {
		return service.Automation{}, s.updateErr
	}
	return service.Automation{ID: id, IsActive: isActive}, nil
}

func (s *stubRepo) ListExecutions(ctx context.Context) ([]service.Execution, error) {
	return s.executions, s.err
}

func newService(repo *stubRepo) *service.Service {
	return service.New(repo, service.RealClock{})
}

func TestListAutomationsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/automations", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ListAutomations(newService(&stubRepo{}))(newEchoContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Empty listings serialize as [], never null.
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCreateAutomation(t *testing.T) {
	req, rec := postJSON("/api/automations", `{"name":"  Nightly Sync  ","initiative":"ops"}`)
	require.NoError(t, CreateAutomation(newService(&stubRepo{}))(newEchoContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var out service.Automation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Nightly Sync", out.Name)
}

func TestCreateAutomationMissingName(t *testing.T) {
	req, rec := postJSON("/api/automations", `{"name":"   "}`)
	require.NoError(t, CreateAutomation(newService(&stubRepo{}))(newEchoContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", decodeError(t, rec).Error)
}

func TestUpdateAutomationNotFound(t *testing.T) {
	req, rec := postJSON("/api/automations/auto-9", `{"is_active":true}`)
	c := newEchoContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("auto-9")

	handler := UpdateAutomation(newService(&stubRepo{updateErr: service.ErrNotFound}))
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Automation with id auto-9 not found", decodeError(t, rec).Error)
}

func TestUpdateAutomationMissingFlag(t *testing.T) {
	req, rec := postJSON("/api/automations/auto-1", `{}`)
	c := newEchoContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("auto-1")

	require.NoError(t, UpdateAutomation(newService(&stubRepo{}))(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "is_active must be a boolean value", decodeError(t, rec).Error)
}

func TestUpdateAutomation(t *testing.T) {
	req, rec := postJSON("/api/automations/auto-1", `{"is_active":false}`)
	c := newEchoContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("auto-1")

	require.NoError(t, UpdateAutomation(newService(&stubRepo{}))(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out service.Automation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "auto-1", out.ID)
	assert.False(t, out.IsActive)
}

func TestMetricsDatabaseTimeout(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	handler := Metrics(newService(&stubRepo{err: context.DeadlineExceeded}))
	require.NoError(t, handler(newEchoContext(req, rec)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database connection timeout", decodeError(t, rec).Error)
}

func TestMetricsHandler(t *testing.T) {
	repo := &stubRepo{executions: []service.Execution{
		{AutomationID: "a", Status: "passed", StartTime: time.Now(), DurationSeconds: 5},
	}}
	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, Metrics(newService(repo))(newEchoContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var m service.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 1, m.TotalExecutions)
	assert.InDelta(t, 100.0, m.SuccessRate, 0.001)
}
