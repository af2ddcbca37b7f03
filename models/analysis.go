package models

import "time"

// AnalysisStatus is the closed set of lifecycle states of an analysis job.
//
// Transitions are forward-only:
//
//	pending → processing → completed
//	                     → failed
//
// completed and failed are terminal.
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

// analysisTransitions is the validated transition table. A status maps to
// the set of states it may move to; absence means terminal.
var analysisTransitions = map[AnalysisStatus][]AnalysisStatus{
	AnalysisPending:    {AnalysisProcessing},
	AnalysisProcessing: {AnalysisCompleted, AnalysisFailed},
}

// Valid reports whether the status is one of the known values.
func (s AnalysisStatus) Valid() bool {
	switch s {
	case AnalysisPending, AnalysisProcessing, AnalysisCompleted, AnalysisFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s AnalysisStatus) Terminal() bool {
	return s == AnalysisCompleted || s == AnalysisFailed
}

// CanTransitionTo reports whether moving from s to next is a legal
// forward transition per the transition table.
func (s AnalysisStatus) CanTransitionTo(next AnalysisStatus) bool {
	for _, allowed := range analysisTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Analysis is one row of the job-run ledger: a record of a single
// analytical job invocation, mutated through its lifecycle as the job
// progresses and immutable once terminal.
//
// The owner reference is strong: deleting the user deletes its analyses.
type Analysis struct {
	ID int64 `json:"id"`

	// UserID is the account that started the job. Required.
	UserID int64 `json:"user_id"`

	// AnalysisType names the kind of job (sentiment_batch, fake_scan, ...).
	AnalysisType string `json:"analysis_type"`

	// Parameters is the serialized job input, opaque to this layer.
	Parameters string `json:"parameters,omitempty"`

	// Result is the serialized job output, set on completion.
	Result string `json:"result,omitempty"`

	Status AnalysisStatus `json:"status"`

	StartedAt time.Time `json:"started_at"`

	// CompletedAt is set by the persistence layer when the job enters a
	// terminal state.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// ExecutionTime is the job duration in seconds, reported by the runner.
	ExecutionTime *float64 `json:"execution_time,omitempty"`
}

// TableName returns the name of the database table
// associated with the Analysis model.
func (a Analysis) TableName() string {
	return "analyses"
}
