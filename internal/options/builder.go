// Package options translates a download request into the declarative
// option set consumed by yt-dlp.
package options

import (
	"fmt"
	"path/filepath"

	"github.com/ytget/youtomp3/internal/model"
)

// DefaultQuality is selected whenever the format changes
const DefaultQuality = "best"

// Audio extraction settings
const (
	AudioFormatSelector = "bestaudio/best"
	AudioCodec          = "mp3"
)

// Video conversion settings
const (
	VideoContainer        = "mp4"
	BestVideoSelector     = "best[ext=mp4]/best"
	heightSelectorPattern = "best[height<=%d][ext=mp4]/best[height<=%d]/best"
)

// OutputTitlePlaceholder is the yt-dlp template field for the video title
const OutputTitlePlaceholder = "%(title)s"

var (
	audioQualities = []string{DefaultQuality, "320", "192", "128", "96"}
	videoQualities = []string{DefaultQuality, "1080p", "720p", "480p", "360p"}

	videoHeights = map[string]int{
		"1080p": 1080,
		"720p":  720,
		"480p":  480,
		"360p":  360,
	}
)

// QualityOptions returns the quality tokens offered for a format, "best" first
func QualityOptions(format model.OutputFormat) []string {
	src := audioQualities
	if !format.IsAudio() {
		src = videoQualities
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Build derives the yt-dlp configuration for a request. Unknown quality
// tokens fall back to the best-effort defaults of the selected format.
func Build(req model.DownloadRequest) model.DownloadConfiguration {
	cfg := model.DownloadConfiguration{
		OutputTemplate: OutputTemplate(req.DownloadPath, req.OutputFormat),
		IgnoreErrors:   true,
	}

	if req.OutputFormat.IsAudio() {
		cfg.Format = AudioFormatSelector
		extract := model.PostProcessor{
			Key:            model.PostProcessorExtractAudio,
			PreferredCodec: AudioCodec,
		}
		if isBitrate(req.Quality) {
			extract.PreferredQuality = req.Quality
		}
		cfg.PostProcessors = append(cfg.PostProcessors, extract)
	} else {
		cfg.Format = VideoSelector(req.Quality)
		cfg.PostProcessors = append(cfg.PostProcessors, model.PostProcessor{
			Key:             model.PostProcessorVideoConvertor,
			PreferredFormat: VideoContainer,
		})
	}

	// metadata is written into the final container, so it runs after conversion
	if req.EmbedMetadata {
		cfg.PostProcessors = append(cfg.PostProcessors, model.PostProcessor{
			Key:         model.PostProcessorMetadata,
			AddMetadata: true,
		})
	}

	if !req.IncludePlaylist {
		cfg.NoPlaylist = true
	}

	return cfg
}

// VideoSelector returns the format selector for a resolution token
func VideoSelector(quality string) string {
	height, ok := videoHeights[quality]
	if !ok {
		return BestVideoSelector
	}
	return fmt.Sprintf(heightSelectorPattern, height, height)
}

// OutputTemplate joins the destination directory with the title placeholder and a fixed extension
func OutputTemplate(dir string, format model.OutputFormat) string {
	return filepath.Join(dir, OutputTitlePlaceholder+"."+format.Extension())
}

func isBitrate(quality string) bool {
	if quality == "" {
		return false
	}
	for _, r := range quality {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
