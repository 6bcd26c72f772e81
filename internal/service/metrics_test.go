package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeRepo struct {
	executions []Execution
	err        error
}

func (f *fakeRepo) ListAutomations(ctx context.Context) ([]Automation, error) { return nil, f.err }
func (f *fakeRepo) CreateAutomation(ctx context.Context, name, initiative, platform string) (Automation, error) {
	return Automation{Name: name}, f.err
}
func (f *fakeRepo) UpdateAutomationActive(ctx context.Context, id string, isActive bool) (Automation, error) {
	return Automation{ID: id, IsActive: isActive}, f.err
}
func (f *fakeRepo) ListExecutions(ctx context.Context) ([]Execution, error) {
	return f.executions, f.err
}

func exec(automationID, status string, start time.Time, duration float64) Execution {
	return Execution{
		AutomationID:    automationID,
		Status:          status,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(duration) * time.Second),
		DurationSeconds: duration,
	}
}

func TestMetricsEmptyHistory(t *testing.T) {
	svc := New(&fakeRepo{}, fakeClock{now: time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)})

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, m.TotalExecutions)
	assert.Zero(t, m.SuccessRate)
	assert.Zero(t, m.AverageDuration)
	assert.Empty(t, m.ExecutionsByStatus)
	assert.Len(t, m.ExecutionsByDay, 7)
	for _, d := range m.ExecutionsByDay {
		assert.Zero(t, d.Executions)
	}
}

func TestMetricsAggregation(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{executions: []Execution{
		exec("auto-aaaa-1111", "success", now.Add(-1*time.Hour), 30),
		exec("auto-aaaa-1111", "failed", now.Add(-2*time.Hour), 10),
		exec("auto-bbbb-2222", "passed", now.AddDate(0, 0, -1), 20),
		exec("auto-bbbb-2222", "queued", now.AddDate(0, 0, -3), 0),
	}}
	svc := New(repo, fakeClock{now: now})

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, m.TotalExecutions)
	assert.InDelta(t, 50.0, m.SuccessRate, 0.001)
	assert.InDelta(t, 15.0, m.AverageDuration, 0.001)

	// Status buckets follow the canonical order.
	require.Len(t, m.ExecutionsByStatus, 3)
	assert.Equal(t, StatusCount{Name: StatusPassed, Value: 2, Color: "#10b981"}, m.ExecutionsByStatus[0])
	assert.Equal(t, StatusCount{Name: StatusFailed, Value: 1, Color: "#ef4444"}, m.ExecutionsByStatus[1])
	assert.Equal(t, StatusCount{Name: StatusPending, Value: 1, Color: "#f59e0b"}, m.ExecutionsByStatus[2])

	// Day series: trailing 7 days oldest first, today last.
	require.Len(t, m.ExecutionsByDay, 7)
	assert.Equal(t, "Mar 1", m.ExecutionsByDay[0].Date)
	assert.Equal(t, "Mar 7", m.ExecutionsByDay[6].Date)
	assert.Equal(t, 2, m.ExecutionsByDay[6].Executions)
	assert.Equal(t, 1, m.ExecutionsByDay[5].Executions)
	assert.Equal(t, 1, m.ExecutionsByDay[3].Executions)

	// Per-automation labels are truncated ids.
	require.Len(t, m.ExecutionsByAutomation, 2)
	assert.Equal(t, "auto-aaa...", m.ExecutionsByAutomation[0].AutomationID)
	assert.Equal(t, 2, m.ExecutionsByAutomation[0].Count)
	assert.InDelta(t, 20.0, m.ExecutionsByAutomation[0].AvgDuration, 0.001)

	assert.Len(t, m.RecentExecutions, 4)
}

func TestMetricsDurationTrend(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	var executions []Execution
	for i := 0; i < 15; i++ {
		executions = append(executions, exec("a", "passed", now.Add(-time.Duration(i)*time.Minute), float64(i)))
	}
	svc := New(&fakeRepo{executions: executions}, fakeClock{now: now})

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	// Last ten of the (newest-first) history, charted oldest first.
	require.Len(t, m.DurationTrend, 10)
	assert.InDelta(t, 9.0, m.DurationTrend[0].Duration, 0.001)
	assert.InDelta(t, 0.0, m.DurationTrend[9].Duration, 0.001)
	assert.Equal(t, "10:00 AM", m.DurationTrend[9].Time)

	assert.Len(t, m.RecentExecutions, 15)
}

func TestMetricsRepoError(t *testing.T) {
	svc := New(&fakeRepo{err: context.DeadlineExceeded}, fakeClock{now: time.Now()})
	_, err := svc.Metrics(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
