package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsview/dashboard-service/internal/service"
)

// Store — Postgres adapter implementing service.AutomationRepository.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

const automationCols = colID + `, ` + colPlatform + `, ` + colName + `, ` + colIsActive + `, ` + colInitiative + `, ` + colCreatedAt

func scanAutomation(row pgx.Row) (service.Automation, error) {
	var a service.Automation
	err := row.Scan(&a.ID, &a.Platform, &a.Name, &a.IsActive, &a.Initiative, &a.CreatedAt)
	return a, err
}

// ListAutomations — all automations in sidebar order.
func (s *Store) ListAutomations(ctx context.Context) ([]service.Automation, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+automationCols+` FROM `+tableAutomations+
		` ORDER BY `+colPlatform+` ASC, `+colInitiative+` ASC, `+colName+` ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []service.Automation
	for rows.Next() {
		a, err := scanAutomation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateAutomation inserts a new automation, inactive by default.
func (s *Store) CreateAutomation(ctx context.Context, name, initiative, platform string) (service.Automation, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO `+tableAutomations+` (`+colName+`, `+colInitiative+`, `+colPlatform+`, `+colIsActive+`)
         VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), false)
         RETURNING `+automationCols,
		name, initiative, platform)
	return scanAutomation(row)
}

// UpdateAutomationActive flips is_active, returning ErrNotFound for an
// unknown id.
func (s *Store) UpdateAutomationActive(ctx context.Context, id string, isActive bool) (service.Automation, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE `+tableAutomations+` SET `+colIsActive+`=$1 WHERE `+colID+`=$2 RETURNING `+automationCols,
		isActive, id)
	a, err := scanAutomation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return service.Automation{}, service.ErrNotFound
	}
	return a, err
}

// ListExecutions — full execution history, newest first, with the
// duration computed in SQL.
func (s *Store) ListExecutions(ctx context.Context) ([]service.Execution, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+colID+`, `+colAutomationID+`, `+colStartTime+`,
           COALESCE(`+colEndTime+`, `+colStartTime+`) AS `+colEndTime+`, `+colStatus+`,
           COALESCE(EXTRACT(EPOCH FROM (`+colEndTime+` - `+colStartTime+`)), 0) AS duration_seconds
         FROM `+tableExecutions+`
         ORDER BY `+colStartTime+` DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []service.Execution
	for rows.Next() {
		var e service.Execution
		if err := rows.Scan(&e.ID, &e.AutomationID, &e.StartTime, &e.EndTime, &e.Status, &e.DurationSeconds); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
