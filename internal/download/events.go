package download

import (
	"time"

	"github.com/ytget/youtomp3/internal/model"
)

// EventType classifies worker notifications
type EventType int

const (
	EventLog EventType = iota
	EventWarning
	EventError
	EventProgress
	EventDone
)

// String returns the string representation of EventType
func (t EventType) String() string {
	switch t {
	case EventLog:
		return "log"
	case EventWarning:
		return "warning"
	case EventError:
		return "error"
	case EventProgress:
		return "progress"
	case EventDone:
		return "done"
	default:
		return "unknown"
	}
}

// ErrorKind tells which stage of a run failed
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindProbe      ErrorKind = "probe"
	KindDownload   ErrorKind = "download"
)

// Error is a failure attributed to one stage of a run
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind) + " error"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is the outcome of one run, carried by the Done event
type Result struct {
	RunID      string
	Status     model.RunStatus
	Title      string
	Filename   string
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Record converts the result into a history entry for the given request
func (r Result) Record(req model.DownloadRequest) *model.RunRecord {
	rec := &model.RunRecord{
		ID:         r.RunID,
		URL:        req.URL,
		Format:     req.OutputFormat.String(),
		Quality:    req.Quality,
		Status:     r.Status,
		Title:      r.Title,
		Filename:   r.Filename,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// Event is a single notification from a running worker
type Event struct {
	Type     EventType
	RunID    string
	Message  string
	Progress *model.ProgressEvent
	Err      *Error
	Result   *Result
}
