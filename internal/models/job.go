package models

import "encoding/json"

// JobType identifies one of the structure-generation pipelines.
type JobType string

const (
	JobTypeMolecule       JobType = "molecule"
	JobTypeFibril         JobType = "fibril"
	JobTypeMixedCrosslink JobType = "mixed_crosslinks"
	JobTypeReducedDensity JobType = "density_change"
)

// DisplayName returns the human-readable label used in menus and summaries.
func (t JobType) DisplayName() string {
	switch t {
	case JobTypeMolecule:
		return "Collagen molecule"
	case JobTypeFibril:
		return "Standard fibril"
	case JobTypeMixedCrosslink:
		return "Mixed-crosslink fibril"
	case JobTypeReducedDensity:
		return "Reduced-density fibril"
	default:
		return string(t)
	}
}

// AllJobTypes lists the selectable job types in menu order.
func AllJobTypes() []JobType {
	return []JobType{
		JobTypeMolecule,
		JobTypeFibril,
		JobTypeMixedCrosslink,
		JobTypeReducedDensity,
	}
}

// Job statuses reported by the queue.
const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusRetrying  = "retrying"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusCancelled = "cancelled"
	JobStatusExpired   = "expired"
)

// IsTerminalStatus reports whether a job status can no longer change.
func IsTerminalStatus(status string) bool {
	switch status {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled, JobStatusExpired:
		return true
	}
	return false
}

// JobSummary is one row of GET /api/jobs/.
type JobSummary struct {
	ID          json.Number `json:"id"`
	Type        string      `json:"type"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	Description string      `json:"description"`
}

// Job is the detailed record from GET /api/jobs/{id}, including progress
// fields consumed by the tracking view.
type Job struct {
	ID           json.Number            `json:"id"`
	Type         string                 `json:"type"`
	Status       string                 `json:"status"`
	Progress     float64                `json:"progress"`
	CurrentStep  string                 `json:"current_step"`
	ErrorMessage string                 `json:"error_message"`
	CreatedAt    string                 `json:"created_at"`
	StartedAt    *string                `json:"started_at"`
	CompletedAt  *string                `json:"completed_at"`
	Description  string                 `json:"description"`
	Parameters   map[string]interface{} `json:"parameters"`
	OutputFiles  []string               `json:"output_files"`
	CanCancel    bool                   `json:"can_cancel"`
}

// SubmitRequest is the payload handed to POST /jobs/submit once the wizard
// has validated everything client-side.
type SubmitRequest struct {
	JobType     JobType                `json:"job_type"`
	JobName     string                 `json:"jobName"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}
