package service

import "strings"

// Canonical execution statuses. Upstream automation platforms report
// a zoo of spellings; everything funnels into these buckets.
const (
	StatusPassed  = "Passed"
	StatusFailed  = "Failed"
	StatusRunning = "Running"
	StatusPending = "Pending"
	StatusSkipped = "Skipped"
	StatusOther   = "Other"
)

var statusOrder = []string{StatusPassed, StatusFailed, StatusRunning, StatusPending, StatusSkipped, StatusOther}

var statusAliases = map[string]string{
	"passed": StatusPassed, "pass": StatusPassed, "success": StatusPassed,
	"succeeded": StatusPassed, "completed": StatusPassed, "done": StatusPassed,

	"failed": StatusFailed, "failure": StatusFailed, "error": StatusFailed,
	"errored": StatusFailed, "cancelled": StatusFailed, "canceled": StatusFailed,
	"aborted": StatusFailed, "timeout": StatusFailed, "timed_out": StatusFailed,

	"running": StatusRunning, "in progress": StatusRunning,
	"in_progress": StatusRunning, "processing": StatusRunning, "executing": StatusRunning,

	"queued": StatusPending, "pending": StatusPending,
	"waiting": StatusPending, "scheduled": StatusPending,

	"skipped": StatusSkipped, "skip": StatusSkipped,
}

// NormalizeStatus maps a raw execution status to its canonical bucket.
func NormalizeStatus(status string) string {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(status))]; ok {
		return s
	}
	return StatusOther
}

var statusColors = map[string]string{
	StatusPassed:  "#10b981",
	StatusFailed:  "#ef4444",
	StatusRunning: "#3b82f6",
	StatusPending: "#f59e0b",
	StatusSkipped: "#8b5cf6",
}

// StatusColor is the chart color for a canonical status.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#64748b"
}
