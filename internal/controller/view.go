package controller

import (
	"context"

	"github.com/ytget/youtomp3/internal/download"
	"github.com/ytget/youtomp3/internal/model"
	"github.com/ytget/youtomp3/internal/report"
)

// View is the window surface driven by the controller
type View interface {
	report.Sink

	// SetRunning toggles the start/stop buttons and the indeterminate progress bar
	SetRunning(running bool)

	// ShowError opens a blocking error dialog
	ShowError(err error)

	// SetQualityOptions replaces the quality choices and selects one of them
	SetQualityOptions(options []string, selected string)

	// SetDownloadLabel sets the caption of the start button
	SetDownloadLabel(label string)
}

// Dispatcher runs fn on the UI thread
type Dispatcher func(fn func())

// Runner executes one download and reports through emit
type Runner interface {
	Run(ctx context.Context, runID string, req model.DownloadRequest, emit func(download.Event)) download.Result
}

// Preferences persists the user's last selections
type Preferences interface {
	SaveRequest(req model.DownloadRequest)
	SetOutputFormat(format model.OutputFormat)
	SetQuality(quality string)
	SetDownloadDirectory(dir string)
}

// History stores run outcomes
type History interface {
	Record(rec *model.RunRecord) error
	Recent(limit int) ([]*model.RunRecord, error)
	CountByStatus(status model.RunStatus) (int64, error)
	Clear() error
}
