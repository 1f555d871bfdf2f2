package recorder

import "NavSentinel/internal/model"

// Run status values persisted with each record.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// RunRecord holds the outcome of one estimation run.
type RunRecord struct {
	Estimate *model.Estimate // nil when the run failed
	Status   string
	ErrText  string
}

// Recorder persists run history for later inspection. A recorder failure
// is logged by the caller and never fails the run.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
