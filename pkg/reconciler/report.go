package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/quotebook/pkg/constants"
)

// Status classifies a sync run.
type Status string

// Sync statuses.
const (
	StatusSynced    Status = "synced"
	StatusConflicts Status = "conflicts"
	StatusError     Status = "error"
)

// String returns the status name.
func (s Status) String() string { return string(s) }

// Report summarizes one sync run for presentation. Adapters show Message
// for DisplayFor and then clear it.
type Report struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Gateway    string        `json:"gateway" yaml:"gateway"`
	Status     Status        `json:"status" yaml:"status"`
	Added      int           `json:"added" yaml:"added"`
	Conflicts  []Conflict    `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Fetched    int           `json:"fetched" yaml:"fetched"`
	DisplayFor time.Duration `json:"display_for" yaml:"display_for"`
	SyncedAt   utc.Time      `json:"synced_at" yaml:"synced_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// NewReport builds the report for a successful merge.
func NewReport(runID, gateway string, fetched int, o Outcome) *Report {
	status := StatusSynced
	if o.ConflictCount() > 0 {
		status = StatusConflicts
	}
	return &Report{
		RunID:      runID,
		Gateway:    gateway,
		Status:     status,
		Added:      len(o.Added),
		Conflicts:  o.Conflicts,
		Fetched:    fetched,
		DisplayFor: constants.StatusDisplayDuration,
		SyncedAt:   utc.Now(),
	}
}

// FailedReport builds the report for a run whose fetch failed.
func FailedReport(runID, gateway string) *Report {
	return &Report{
		RunID:      runID,
		Gateway:    gateway,
		Status:     StatusError,
		DisplayFor: constants.StatusDisplayDuration,
		SyncedAt:   utc.Now(),
	}
}

// ConflictCount returns the number of conflicts resolved.
func (r *Report) ConflictCount() int {
	return len(r.Conflicts)
}

// Message returns the transient status line for the run.
func (r *Report) Message() string {
	switch r.Status {
	case StatusError:
		return constants.MsgSyncError
	case StatusConflicts:
		return fmt.Sprintf(constants.MsgConflictsFormat, r.ConflictCount())
	default:
		return constants.MsgSynced
	}
}

// IsSuccess reports whether the fetch succeeded.
func (r *Report) IsSuccess() bool {
	return r.Status != StatusError
}
