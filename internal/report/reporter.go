// Package report renders worker output for the window: timestamped log
// lines, status text and progress wording. All methods must be called on
// the UI thread.
package report

import (
	"fmt"
	"time"

	"github.com/ytget/youtomp3/internal/model"
)

// Status texts
const (
	StatusReady        = "Ready"
	StatusInitializing = "Initializing download..."
	StatusProcessing   = "Processing..."
)

// TimestampLayout is the wall-clock prefix of every log line
const TimestampLayout = "15:04:05"

// Sink receives rendered text
type Sink interface {
	SetStatus(text string)
	AppendLog(line string)
	ClearLog()
}

// Reporter formats messages and forwards them to a Sink
type Reporter struct {
	sink Sink
	now  func() time.Time
}

// New creates a reporter writing to sink
func New(sink Sink) *Reporter {
	return &Reporter{sink: sink, now: time.Now}
}

// Log appends "[HH:MM:SS] msg" to the log
func (r *Reporter) Log(msg string) {
	r.sink.AppendLog(FormatLogLine(r.now(), msg))
}

// Status replaces the status text
func (r *Reporter) Status(text string) {
	r.sink.SetStatus(text)
}

// Clear empties the log
func (r *Reporter) Clear() {
	r.sink.ClearLog()
}

// Progress renders a collaborator progress notification
func (r *Reporter) Progress(ev model.ProgressEvent) {
	switch ev.Phase {
	case model.PhaseDownloading:
		r.sink.SetStatus(FormatDownloading(ev))
	case model.PhaseFinished:
		r.sink.SetStatus(StatusProcessing)
		if name := ev.BaseName(); name != "" {
			r.Log("Downloaded: " + name)
		}
	}
}

// FormatLogLine prefixes msg with the wall-clock time
func FormatLogLine(t time.Time, msg string) string {
	return fmt.Sprintf("[%s] %s", t.Format(TimestampLayout), msg)
}

// FormatDownloading returns "Downloading: 42.0%" when the total is known
// and "Downloading: N bytes" otherwise.
func FormatDownloading(ev model.ProgressEvent) string {
	if percent, ok := ev.Percent(); ok {
		return fmt.Sprintf("Downloading: %.1f%%", percent)
	}
	return fmt.Sprintf("Downloading: %d bytes", ev.DownloadedBytes)
}
