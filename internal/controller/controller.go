package controller

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/youtomp3/internal/download"
	"github.com/ytget/youtomp3/internal/model"
	"github.com/ytget/youtomp3/internal/options"
	"github.com/ytget/youtomp3/internal/platform"
	"github.com/ytget/youtomp3/internal/report"
)

// Errors returned to callers. The view translates them for its dialogs.
var (
	ErrEmptyURL       = errors.New("empty url")
	ErrPathNotFound   = errors.New("download path does not exist")
	ErrAlreadyRunning = errors.New("a download is already running")
	ErrNoHistory      = errors.New("history is disabled")
)

// Log messages
const (
	msgStopping          = "Stopping download..."
	msgFormatAudio       = "Format changed to MP3 (Audio Only)"
	msgFormatVideo       = "Format changed to MP4 (Video)"
	downloadButtonPrefix = "Download "
)

// Deps are the collaborators of a Controller. History and Preferences are optional.
type Deps struct {
	View        View
	Runner      Runner
	Dispatch    Dispatcher
	History     History
	Preferences Preferences
	Logger      *zap.Logger
}

type run struct {
	req     model.DownloadRequest
	started time.Time
	stopped bool
}

// Controller implements the window's actions
type Controller struct {
	view     View
	reporter *report.Reporter
	runner   Runner
	dispatch Dispatcher
	history  History
	prefs    Preferences
	logger   *zap.Logger

	spawn      func(fn func())
	pathExists func(string) bool
	openFolder func(string) error
	newRunID   func() string
	now        func() time.Time

	state State
	runs  map[string]*run
}

// New creates a controller in the Idle state
func New(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatch := deps.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	return &Controller{
		view:       deps.View,
		reporter:   report.New(deps.View),
		runner:     deps.Runner,
		dispatch:   dispatch,
		history:    deps.History,
		prefs:      deps.Preferences,
		logger:     logger,
		spawn:      func(fn func()) { go fn() },
		pathExists: platform.DirectoryExists,
		openFolder: platform.OpenFolder,
		newRunID:   uuid.NewString,
		now:        time.Now,
		state: State{
			Worker:  model.WorkerIdle,
			Format:  model.FormatAudio,
			Quality: options.DefaultQuality,
		},
		runs: make(map[string]*run),
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	return c.state
}

// Reporter returns the reporter bound to the view
func (c *Controller) Reporter() *report.Reporter {
	return c.reporter
}

// Init pushes the initial selections to the view
func (c *Controller) Init(format model.OutputFormat, quality, downloadPath string) {
	c.state.Format = format
	c.state.DownloadPath = downloadPath
	c.applyFormat(format, quality)
	c.view.SetRunning(false)
	c.reporter.Status(report.StatusReady)
}

// StartDownload validates the form input and spawns a worker
func (c *Controller) StartDownload(req model.DownloadRequest) error {
	req = req.Normalized()

	if c.state.IsRunning() {
		return ErrAlreadyRunning
	}
	if req.URL == "" {
		c.view.ShowError(ErrEmptyURL)
		return ErrEmptyURL
	}
	if !c.pathExists(req.DownloadPath) {
		c.view.ShowError(ErrPathNotFound)
		return ErrPathNotFound
	}

	runID := c.newRunID()
	c.state.Worker = model.WorkerRunning
	c.state.RunID = runID
	c.state.Format = req.OutputFormat
	c.state.Quality = req.Quality
	c.state.DownloadPath = req.DownloadPath
	c.runs[runID] = &run{req: req, started: c.now()}

	c.view.SetRunning(true)
	c.reporter.Status(report.StatusInitializing)

	if c.prefs != nil {
		c.prefs.SaveRequest(req)
	}

	c.logger.Info("Starting download",
		zap.String("run_id", runID),
		zap.String("url", req.URL),
		zap.String("format", req.OutputFormat.String()),
		zap.String("quality", req.Quality),
	)

	emit := func(ev download.Event) {
		c.dispatch(func() { c.handleEvent(ev) })
	}
	c.spawn(func() {
		c.runner.Run(context.Background(), runID, req, emit)
	})
	return nil
}

// StopDownload returns the window to Idle. The collaborator call is not interrupted.
func (c *Controller) StopDownload() bool {
	if !c.state.IsRunning() {
		return false
	}

	c.reporter.Log(msgStopping)
	if r, ok := c.runs[c.state.RunID]; ok {
		r.stopped = true
		c.record(&model.RunRecord{
			ID:         c.state.RunID,
			URL:        r.req.URL,
			Format:     r.req.OutputFormat.String(),
			Quality:    r.req.Quality,
			Status:     model.RunStatusStopped,
			StartedAt:  r.started,
			FinishedAt: c.now(),
		})
	}
	c.logger.Info("Download stopped by user", zap.String("run_id", c.state.RunID))
	c.finish()
	return true
}

// SetFormat switches between MP3 and MP4 and resets the quality to best
func (c *Controller) SetFormat(format model.OutputFormat) {
	if format != model.FormatVideo {
		format = model.FormatAudio
	}
	c.state.Format = format
	c.applyFormat(format, options.DefaultQuality)

	if format.IsAudio() {
		c.reporter.Log(msgFormatAudio)
	} else {
		c.reporter.Log(msgFormatVideo)
	}
	if c.prefs != nil {
		c.prefs.SetOutputFormat(format)
		c.prefs.SetQuality(c.state.Quality)
	}
}

// SetQuality records the selected quality token
func (c *Controller) SetQuality(quality string) {
	c.state.Quality = quality
	if c.prefs != nil {
		c.prefs.SetQuality(quality)
	}
}

// SetDownloadPath tracks the destination as it is typed or picked.
// An empty path is tracked but not persisted.
func (c *Controller) SetDownloadPath(path string) {
	path = strings.TrimSpace(path)
	c.state.DownloadPath = path
	if path != "" && c.prefs != nil {
		c.prefs.SetDownloadDirectory(path)
	}
}

// ClearLog empties the log view
func (c *Controller) ClearLog() {
	c.reporter.Clear()
}

// OpenDownloadFolder reveals the destination in the system file manager
func (c *Controller) OpenDownloadFolder() error {
	if !c.pathExists(c.state.DownloadPath) {
		c.view.ShowError(ErrPathNotFound)
		return ErrPathNotFound
	}
	if err := c.openFolder(c.state.DownloadPath); err != nil {
		c.logger.Warn("Failed to open folder", zap.String("path", c.state.DownloadPath), zap.Error(err))
		c.view.ShowError(err)
		return err
	}
	return nil
}

// RecentRuns returns the newest history entries
func (c *Controller) RecentRuns(limit int) ([]*model.RunRecord, error) {
	if c.history == nil {
		return nil, ErrNoHistory
	}
	return c.history.Recent(limit)
}

// HistoryStats counts the recorded runs per outcome
func (c *Controller) HistoryStats() (model.RunStats, error) {
	var stats model.RunStats
	if c.history == nil {
		return stats, ErrNoHistory
	}
	for _, status := range model.RunStatuses {
		n, err := c.history.CountByStatus(status)
		if err != nil {
			return model.RunStats{}, err
		}
		stats.Add(status, n)
	}
	return stats, nil
}

// ClearHistory deletes every recorded run
func (c *Controller) ClearHistory() error {
	if c.history == nil {
		return ErrNoHistory
	}
	if err := c.history.Clear(); err != nil {
		c.logger.Warn("Failed to clear history", zap.Error(err))
		return err
	}
	c.logger.Info("History cleared")
	return nil
}

func (c *Controller) applyFormat(format model.OutputFormat, quality string) {
	choices := options.QualityOptions(format)
	if !slices.Contains(choices, quality) {
		quality = options.DefaultQuality
	}
	c.state.Quality = quality
	c.view.SetDownloadLabel(downloadButtonPrefix + format.Label())
	c.view.SetQualityOptions(choices, quality)
}

// handleEvent runs on the UI thread for every worker notification
func (c *Controller) handleEvent(ev download.Event) {
	current := ev.RunID == c.state.RunID && c.state.IsRunning()

	switch ev.Type {
	case download.EventLog, download.EventWarning, download.EventError:
		c.reporter.Log(ev.Message)
	case download.EventProgress:
		if ev.Progress == nil {
			return
		}
		if current {
			c.reporter.Progress(*ev.Progress)
		} else if ev.Progress.Phase == model.PhaseFinished && ev.Progress.BaseName() != "" {
			c.reporter.Log("Downloaded: " + ev.Progress.BaseName())
		}
	case download.EventDone:
		c.complete(ev.RunID, ev.Result)
		if current {
			c.finish()
		}
	}
}

func (c *Controller) complete(runID string, result *download.Result) {
	r, ok := c.runs[runID]
	if !ok {
		return
	}
	delete(c.runs, runID)
	if result == nil {
		return
	}

	rec := result.Record(r.req)
	if r.stopped {
		rec.Status = model.RunStatusStopped
	}
	c.record(rec)
	c.logger.Info("Run finished",
		zap.String("run_id", runID),
		zap.String("status", rec.Status.String()),
		zap.Duration("elapsed", rec.Elapsed()),
	)
}

func (c *Controller) finish() {
	c.state.Worker = model.WorkerIdle
	c.view.SetRunning(false)
	c.reporter.Status(report.StatusReady)
}

func (c *Controller) record(rec *model.RunRecord) {
	if c.history == nil {
		return
	}
	if err := c.history.Record(rec); err != nil {
		c.logger.Warn("Failed to record history", zap.String("run_id", rec.ID), zap.Error(err))
	}
}
