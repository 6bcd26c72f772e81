package service

import (
	"context"
	"time"
)

// Clock abstracts time so day-bucket aggregation is testable.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Automation is one automation record from the control panel.
type Automation struct {
	ID         string    `json:"id"`
	Platform   *string   `json:"platform"`
	Name       string    `json:"automation_name"`
	IsActive   bool      `json:"is_active"`
	Initiative *string   `json:"initiative"`
	CreatedAt  time.Time `json:"created_at"`
}

// Execution is one automation run with its precomputed duration.
type Execution struct {
	ID              string    `json:"id"`
	AutomationID    string    `json:"automation_id"`
	StartTime       time.Time `json:"automation_start_time"`
	EndTime         time.Time `json:"automation_end_time"`
	Status          string    `json:"status"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// AutomationRepository — storage port for automations and their
// execution history.
type AutomationRepository interface {
	ListAutomations(ctx context.Context) ([]Automation, error)
	CreateAutomation(ctx context.Context, name, initiative, platform string) (Automation, error)
	UpdateAutomationActive(ctx context.Context, id string, isActive bool) (Automation, error)
	ListExecutions(ctx context.Context) ([]Execution, error)
}
