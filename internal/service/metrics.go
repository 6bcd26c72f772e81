package service

import (
	"context"
)

// Metrics is the dashboard payload aggregated from execution history.
type Metrics struct {
	TotalExecutions        int               `json:"totalExecutions"`
	SuccessRate            float64           `json:"successRate"`
	AverageDuration        float64           `json:"averageDuration"`
	ExecutionsByStatus     []StatusCount     `json:"executionsByStatus"`
	ExecutionsByDay        []DayCount        `json:"executionsByDay"`
	ExecutionsByAutomation []AutomationStats `json:"executionsByAutomation"`
	DurationTrend          []TrendPoint      `json:"durationTrend"`
	RecentExecutions       []Execution       `json:"recentExecutions"`
}

type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type DayCount struct {
	Date       string `json:"date"`
	Executions int    `json:"executions"`
}

type AutomationStats struct {
	AutomationID string  `json:"automation_id"`
	Count        int     `json:"count"`
	AvgDuration  float64 `json:"avg_duration"`
}

type TrendPoint struct {
	Time     string  `json:"time"`
	Duration float64 `json:"duration"`
}

// Service implements the dashboard use cases over the storage port.
type Service struct {
	repo  AutomationRepository
	clock Clock
}

func New(repo AutomationRepository, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) Automations(ctx context.Context) ([]Automation, error) {
	return s.repo.ListAutomations(ctx)
}

func (s *Service) CreateAutomation(ctx context.Context, name, initiative, platform string) (Automation, error) {
	return s.repo.CreateAutomation(ctx, name, initiative, platform)
}

func (s *Service) SetAutomationActive(ctx context.Context, id string, isActive bool) (Automation, error) {
	return s.repo.UpdateAutomationActive(ctx, id, isActive)
}

// Metrics aggregates the full execution history into the dashboard
// shape: totals, success rate, per-status counts, a 7-day activity
// series, per-automation averages and a short duration trend.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	executions, err := s.repo.ListExecutions(ctx)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		TotalExecutions:    len(executions),
		ExecutionsByStatus: []StatusCount{},
		RecentExecutions:   head(executions, 20),
	}

	successful := 0
	totalDuration := 0.0
	statusCounts := make(map[string]int)
	for _, e := range executions {
		status := NormalizeStatus(e.Status)
		statusCounts[status]++
		if status == StatusPassed {
			successful++
		}
		totalDuration += e.DurationSeconds
	}
	if len(executions) > 0 {
		m.SuccessRate = float64(successful) / float64(len(executions)) * 100
		m.AverageDuration = totalDuration / float64(len(executions))
	}
	for _, status := range statusOrder {
		if count, ok := statusCounts[status]; ok {
			m.ExecutionsByStatus = append(m.ExecutionsByStatus, StatusCount{
				Name:  status,
				Value: count,
				Color: StatusColor(status),
			})
		}
	}

	m.ExecutionsByDay = s.dayBuckets(executions)
	m.ExecutionsByAutomation = automationStats(executions)
	m.DurationTrend = durationTrend(executions)
	return m, nil
}

// dayBuckets counts executions per calendar day over the trailing
// seven days, oldest first.
func (s *Service) dayBuckets(executions []Execution) []DayCount {
	today := s.clock.Now()
	out := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		dayKey := day.Format("2006-01-02")
		count := 0
		for _, e := range executions {
			if e.StartTime.Format("2006-01-02") == dayKey {
				count++
			}
		}
		out = append(out, DayCount{Date: day.Format("Jan 2"), Executions: count})
	}
	return out
}

func automationStats(executions []Execution) []AutomationStats {
	type agg struct {
		count         int
		totalDuration float64
	}
	byID := make(map[string]*agg)
	var order []string
	for _, e := range executions {
		a, ok := byID[e.AutomationID]
		if !ok {
			a = &agg{}
			byID[e.AutomationID] = a
			order = append(order, e.AutomationID)
		}
		a.count++
		a.totalDuration += e.DurationSeconds
	}
	out := make([]AutomationStats, 0, len(order))
	for _, id := range order {
		a := byID[id]
		label := id
		if len(label) > 8 {
			label = label[:8] + "..."
		}
		out = append(out, AutomationStats{
			AutomationID: label,
			Count:        a.count,
			AvgDuration:  a.totalDuration / float64(a.count),
		})
	}
	return out
}

// durationTrend charts the last ten executions, oldest first.
func durationTrend(executions []Execution) []TrendPoint {
	recent := head(executions, 10)
	out := make([]TrendPoint, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		e := recent[i]
		out = append(out, TrendPoint{
			Time:     e.StartTime.Format("03:04 PM"),
			Duration: e.DurationSeconds,
		})
	}
	return out
}

func head(executions []Execution, n int) []Execution {
	if len(executions) < n {
		n = len(executions)
	}
	return executions[:n]
}
