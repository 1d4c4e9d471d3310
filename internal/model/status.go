package model

// WorkerState is the lifecycle state of the download worker as seen by the UI
type WorkerState string

const (
	// WorkerIdle means no download is running and the form is editable
	WorkerIdle WorkerState = "Idle"

	// WorkerRunning means a background download was started and has not reported back
	WorkerRunning WorkerState = "Running"
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	return string(ws)
}

// IsRunning returns true if a worker is in flight
func (ws WorkerState) IsRunning() bool {
	return ws == WorkerRunning
}

// RunStatus is the recorded outcome of a single worker run
type RunStatus string

const (
	// RunStatusCompleted means the collaborator returned without error
	RunStatusCompleted RunStatus = "completed"

	// RunStatusFailed means the collaborator or filesystem returned an error
	RunStatusFailed RunStatus = "failed"

	// RunStatusRejected means the URL did not pass the allow-list
	RunStatusRejected RunStatus = "rejected"

	// RunStatusStopped means the user pressed stop before the worker reported back
	RunStatusStopped RunStatus = "stopped"
)

// String returns the string representation of RunStatus
func (rs RunStatus) String() string {
	return string(rs)
}

// IsSuccess returns true only for completed runs
func (rs RunStatus) IsSuccess() bool {
	return rs == RunStatusCompleted
}

// RunStatuses lists every recorded outcome
var RunStatuses = []RunStatus{
	RunStatusCompleted,
	RunStatusFailed,
	RunStatusRejected,
	RunStatusStopped,
}

// RunStats counts recorded runs by outcome
type RunStats struct {
	Total     int64
	Succeeded int64
	ByStatus  map[RunStatus]int64
}

// Add counts n runs that ended with status
func (s *RunStats) Add(status RunStatus, n int64) {
	if s.ByStatus == nil {
		s.ByStatus = make(map[RunStatus]int64)
	}
	s.ByStatus[status] += n
	s.Total += n
	if status.IsSuccess() {
		s.Succeeded += n
	}
}

// Unsuccessful returns the number of runs that did not complete
func (s RunStats) Unsuccessful() int64 {
	return s.Total - s.Succeeded
}
