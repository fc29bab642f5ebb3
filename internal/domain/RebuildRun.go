package domain

import "time"

type RebuildRunStatus string

const (
	RebuildRunStatusRunning   RebuildRunStatus = "running"
	RebuildRunStatusSucceeded RebuildRunStatus = "succeeded"
	RebuildRunStatusSkipped   RebuildRunStatus = "skipped"
	RebuildRunStatusFailed    RebuildRunStatus = "failed"
)

// RebuildRun registra uma execução do recálculo completo das métricas
type RebuildRun struct {
	RunID         string           `json:"run_id"`
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at,omitempty"`
	Status        RebuildRunStatus `json:"status"`
	Subscriptions int              `json:"subscriptions"`
	TimelineRows  int              `json:"timeline_rows"`
	Events        int              `json:"events"`
	Months        int              `json:"months"`
	Error         string           `json:"error,omitempty"`
}
