package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ytget/youtomp3/internal/model"
	"github.com/ytget/youtomp3/internal/options"
	"github.com/ytget/youtomp3/internal/platform"
	"github.com/ytget/youtomp3/internal/validation"
)

// Log messages shown to the user
const (
	MsgInvalidURL    = "ERROR: Invalid YouTube URL"
	msgInvalidInput  = "ERROR: Invalid download request - %v"
	msgStarting      = "Starting %s download from: %s"
	msgProbeWarning  = "Warning: Could not extract info - %v"
	msgPlaylistCount = "Found %d videos to download"
	msgTitle         = "Title: %s"
	msgDuration      = "Duration: %s seconds"
	msgCompleted     = "%s download completed successfully!"
	msgError         = "ERROR: %v"
)

// Worker executes one download per Run call
type Worker struct {
	extractor Extractor
	mkdir     func(string) error
	now       func() time.Time
	logger    *zap.Logger
}

// NewWorker creates a worker backed by the given collaborator
func NewWorker(extractor Extractor, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		extractor: extractor,
		mkdir:     platform.CreateDirectoryIfNotExists,
		now:       time.Now,
		logger:    logger,
	}
}

// Run performs the whole download sequence for req and reports through emit.
// It never panics and always finishes with exactly one EventDone.
func (w *Worker) Run(ctx context.Context, runID string, req model.DownloadRequest, emit func(Event)) (result Result) {
	req = req.Normalized()
	result = Result{RunID: runID, StartedAt: w.now()}
	log := w.logger.With(zap.String("run_id", runID), zap.String("url", req.URL))

	send := func(ev Event) {
		ev.RunID = runID
		if emit != nil {
			emit(ev)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Worker panicked", zap.Any("panic", r))
			e := &Error{Kind: KindDownload, Err: errors.Errorf("worker panic: %v", r)}
			result.Status = model.RunStatusFailed
			result.Err = e
			send(Event{Type: EventError, Message: fmt.Sprintf(msgError, r), Err: e})
		}
		result.FinishedAt = w.now()
		done := result
		send(Event{Type: EventDone, Result: &done})
	}()

	fail := func(kind ErrorKind, status model.RunStatus, message string, err error) {
		e := &Error{Kind: kind, Err: err}
		result.Status = status
		result.Err = e
		send(Event{Type: EventError, Message: message, Err: e})
	}

	if err := validation.ValidateRequest(req); err != nil {
		log.Warn("Rejected request", zap.Error(err))
		message := MsgInvalidURL
		if !errors.Is(err, validation.ErrInvalidURL) {
			message = fmt.Sprintf(msgInvalidInput, err)
		}
		fail(KindValidation, model.RunStatusRejected, message, errors.Wrap(err, "validate request"))
		return result
	}

	if err := w.mkdir(req.DownloadPath); err != nil {
		log.Error("Failed to create destination", zap.String("path", req.DownloadPath), zap.Error(err))
		fail(KindDownload, model.RunStatusFailed, fmt.Sprintf(msgError, err), errors.Wrap(err, "create destination directory"))
		return result
	}

	label := req.OutputFormat.Label()
	send(Event{Type: EventLog, Message: fmt.Sprintf(msgStarting, label, req.URL)})

	cfg := options.Build(req)
	log.Debug("Built download configuration",
		zap.String("format", cfg.Format),
		zap.String("output", cfg.OutputTemplate),
		zap.Bool("no_playlist", cfg.NoPlaylist),
		zap.Any("postprocessors", cfg.PostProcessorKeys()),
	)

	info, err := w.extractor.Probe(ctx, req.URL, cfg)
	switch {
	case err != nil:
		log.Warn("Metadata probe failed", zap.Error(err))
		send(Event{
			Type:    EventWarning,
			Message: fmt.Sprintf(msgProbeWarning, err),
			Err:     &Error{Kind: KindProbe, Err: errors.Wrap(err, "probe")},
		})
	case info == nil:
		log.Warn("Metadata probe returned nothing")
	case info.Playlist:
		result.Title = info.Title
		send(Event{Type: EventLog, Message: fmt.Sprintf(msgPlaylistCount, info.EntryCount())})
	default:
		result.Title = info.Title
		send(Event{Type: EventLog, Message: fmt.Sprintf(msgTitle, info.DisplayTitle())})
		send(Event{Type: EventLog, Message: fmt.Sprintf(msgDuration, info.DurationSeconds())})
	}

	var (
		mu       sync.Mutex
		filename string
	)
	onProgress := func(p model.ProgressEvent) {
		if p.Phase == model.PhaseFinished && p.Filename != "" {
			mu.Lock()
			filename = p.BaseName()
			mu.Unlock()
		}
		ev := p
		send(Event{Type: EventProgress, Progress: &ev})
	}

	if err := w.extractor.Download(ctx, req.URL, cfg, onProgress); err != nil {
		log.Error("Download failed", zap.Error(err))
		fail(KindDownload, model.RunStatusFailed, fmt.Sprintf(msgError, err), errors.Wrap(err, "download"))
		return result
	}

	mu.Lock()
	result.Filename = filename
	mu.Unlock()

	result.Status = model.RunStatusCompleted
	log.Info("Download completed", zap.String("filename", result.Filename))
	send(Event{Type: EventLog, Message: fmt.Sprintf(msgCompleted, label)})
	return result
}
