package download

import (
	"context"

	"github.com/ytget/youtomp3/internal/model"
)

// Extractor is the extraction collaborator used by the worker
type Extractor interface {
	// Probe resolves metadata without downloading
	Probe(ctx context.Context, url string, cfg model.DownloadConfiguration) (*model.MediaInfo, error)

	// Download fetches and post-processes the media, reporting progress until it returns
	Download(ctx context.Context, url string, cfg model.DownloadConfiguration, progress func(model.ProgressEvent)) error
}
