package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"passed":      StatusPassed,
		"SUCCESS":     StatusPassed,
		" Completed ": StatusPassed,
		"done":        StatusPassed,
		"failed":      StatusFailed,
		"Error":       StatusFailed,
		"cancelled":   StatusFailed,
		"canceled":    StatusFailed,
		"timed_out":   StatusFailed,
		"running":     StatusRunning,
		"In Progress": StatusRunning,
		"queued":      StatusPending,
		"scheduled":   StatusPending,
		"skip":        StatusSkipped,
		"weird":       StatusOther,
		"":            StatusOther,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw=%q", raw)
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#10b981", StatusColor(StatusPassed))
	assert.Equal(t, "#ef4444", StatusColor(StatusFailed))
	assert.Equal(t, "#64748b", StatusColor(StatusOther))
	assert.Equal(t, "#64748b", StatusColor("nonsense"))
}
