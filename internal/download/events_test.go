package download

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/youtomp3/internal/model"
)

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "log", EventLog.String())
	assert.Equal(t, "warning", EventWarning.String())
	assert.Equal(t, "error", EventError.String())
	assert.Equal(t, "progress", EventProgress.String())
	assert.Equal(t, "done", EventDone.String())
	assert.Equal(t, "unknown", EventType(42).String())
}

func TestError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	err := &Error{Kind: KindDownload, Err: base}

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "probe error", (&Error{Kind: KindProbe}).Error())
}

func TestResult_Record(t *testing.T) {
	start := time.Now()
	req := model.DownloadRequest{
		URL:          "https://youtu.be/a",
		OutputFormat: model.FormatVideo,
		Quality:      "720p",
	}
	res := Result{
		RunID:      "id-1",
		Status:     model.RunStatusFailed,
		Title:      "Clip",
		Err:        &Error{Kind: KindDownload, Err: errors.New("403")},
		StartedAt:  start,
		FinishedAt: start.Add(time.Second),
	}

	rec := res.Record(req)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "mp4", rec.Format)
	assert.Equal(t, "720p", rec.Quality)
	assert.Equal(t, model.RunStatusFailed, rec.Status)
	assert.Equal(t, "403", rec.Error)
	assert.Equal(t, time.Second, rec.Elapsed())
}
