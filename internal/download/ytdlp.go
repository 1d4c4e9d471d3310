package download

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/youtomp3/internal/model"
	"github.com/ytget/youtomp3/internal/platform"
)

// Collaborator defaults
const (
	DefaultProgressInterval = 500 * time.Millisecond
	DefaultProbeTimeout     = 60 * time.Second
)

// PlaylistSource lists playlist entries without invoking yt-dlp
type PlaylistSource interface {
	List(ctx context.Context, url string) (*model.MediaInfo, error)
}

// YTDLPOptions configures the yt-dlp adapter
type YTDLPOptions struct {
	Binary           string // empty uses yt-dlp from PATH
	FFmpegLocation   string
	ProgressInterval time.Duration
	ProbeTimeout     time.Duration
}

// YTDLP implements Extractor on top of the yt-dlp executable
type YTDLP struct {
	opts      YTDLPOptions
	playlists PlaylistSource
	logger    *zap.Logger
}

// NewYTDLP creates the adapter. playlists may be nil.
func NewYTDLP(opts YTDLPOptions, playlists PlaylistSource, logger *zap.Logger) *YTDLP {
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLP{opts: opts, playlists: playlists, logger: logger}
}

// Probe resolves title, duration and playlist entries. Playlist URLs are
// listed natively first; yt-dlp's single JSON dump is the fallback.
func (y *YTDLP) Probe(ctx context.Context, url string, cfg model.DownloadConfiguration) (*model.MediaInfo, error) {
	if !cfg.NoPlaylist && y.playlists != nil && platform.IsPlaylistURL(url) {
		info, err := y.playlists.List(ctx, url)
		if err == nil {
			return info, nil
		}
		y.logger.Debug("Native playlist listing failed, falling back to yt-dlp", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(ctx, y.opts.ProbeTimeout)
	defer cancel()

	cmd := y.base().
		SkipDownload().
		DumpSingleJSON().
		FlatPlaylist()
	if cfg.NoPlaylist {
		cmd.NoPlaylist()
	}

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp probe failed: %w", err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("yt-dlp returned no metadata for %s", url)
	}

	return toMediaInfo(infos[0]), nil
}

// Download runs yt-dlp with the configuration and forwards its progress hook
func (y *YTDLP) Download(ctx context.Context, url string, cfg model.DownloadConfiguration, progress func(model.ProgressEvent)) error {
	cmd := y.command(cfg)
	if progress != nil {
		cmd.ProgressFunc(y.opts.ProgressInterval, func(update ytdlp.ProgressUpdate) {
			if ev, ok := toProgressEvent(update); ok {
				progress(ev)
			}
		})
	}

	y.logger.Debug("Running yt-dlp", zap.String("url", url), zap.String("format", cfg.Format))
	if _, err := cmd.Run(ctx, url); err != nil {
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	return nil
}

func (y *YTDLP) base() *ytdlp.Command {
	cmd := ytdlp.New()
	if y.opts.Binary != "" {
		cmd.SetExecutable(y.opts.Binary)
	}
	if y.opts.FFmpegLocation != "" {
		cmd.FFmpegLocation(y.opts.FFmpegLocation)
	}
	return cmd
}

// command maps a DownloadConfiguration onto yt-dlp flags
func (y *YTDLP) command(cfg model.DownloadConfiguration) *ytdlp.Command {
	cmd := y.base().
		Format(cfg.Format).
		Output(cfg.OutputTemplate)

	if cfg.IgnoreErrors {
		cmd.IgnoreErrors()
	}
	if cfg.NoPlaylist {
		cmd.NoPlaylist()
	}

	for _, pp := range cfg.PostProcessors {
		switch pp.Key {
		case model.PostProcessorExtractAudio:
			cmd.ExtractAudio().AudioFormat(pp.PreferredCodec)
			if pp.PreferredQuality != "" {
				cmd.AudioQuality(pp.PreferredQuality)
			}
		case model.PostProcessorVideoConvertor:
			cmd.RecodeVideo(pp.PreferredFormat)
		case model.PostProcessorMetadata:
			if pp.AddMetadata {
				cmd.EmbedMetadata()
			}
		default:
			y.logger.Warn("Unknown post-processor", zap.String("key", string(pp.Key)))
		}
	}
	return cmd
}

// toProgressEvent keeps only the phases the reporter understands
func toProgressEvent(update ytdlp.ProgressUpdate) (model.ProgressEvent, bool) {
	var phase model.ProgressPhase
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		phase = model.PhaseDownloading
	case ytdlp.ProgressStatusFinished:
		phase = model.PhaseFinished
	default:
		return model.ProgressEvent{}, false
	}

	ev := model.ProgressEvent{
		Phase:           phase,
		DownloadedBytes: int64(update.DownloadedBytes),
		Filename:        update.Filename,
	}
	if update.TotalBytes > 0 {
		total := int64(update.TotalBytes)
		ev.TotalBytes = &total
	}
	return ev, true
}

func toMediaInfo(info *ytdlp.ExtractedInfo) *model.MediaInfo {
	out := &model.MediaInfo{}
	if info == nil {
		return out
	}
	if info.Title != nil {
		out.Title = *info.Title
	}
	if info.Duration != nil && *info.Duration > 0 {
		out.Duration = time.Duration(*info.Duration * float64(time.Second))
	}
	if info.Entries != nil {
		out.Playlist = true
		out.Entries = make([]model.MediaEntry, 0, len(info.Entries))
		for _, e := range info.Entries {
			if e == nil {
				continue
			}
			entry := model.MediaEntry{ID: e.ID}
			if e.Title != nil {
				entry.Title = *e.Title
			}
			if e.ID != "" {
				entry.URL = fmt.Sprintf(platform.VideoURLTemplate, e.ID)
			}
			out.Entries = append(out.Entries, entry)
		}
	}
	return out
}
