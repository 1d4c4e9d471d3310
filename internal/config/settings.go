package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/youtomp3/internal/model"
	"github.com/ytget/youtomp3/internal/options"
	"github.com/ytget/youtomp3/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir     = "download_directory"
	KeyOutputFormat    = "output_format"
	KeyQuality         = "quality"
	KeyIncludePlaylist = "include_playlist"
	KeyEmbedMetadata   = "embed_metadata"
	KeyLanguage        = "app_language"
)

// Default values
const (
	DefaultOutputFormat    = model.FormatAudio
	DefaultQuality         = options.DefaultQuality
	DefaultIncludePlaylist = false
	DefaultEmbedMetadata   = true
	DefaultLanguage        = "system"
	FallbackDownloadDir    = "/tmp/downloads"
)

// Settings persists the form selections between sessions
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetOutputFormat returns the last selected output format
func (s *Settings) GetOutputFormat() model.OutputFormat {
	switch f := model.OutputFormat(s.app.Preferences().String(KeyOutputFormat)); f {
	case model.FormatAudio, model.FormatVideo:
		return f
	default:
		return DefaultOutputFormat
	}
}

// SetOutputFormat sets the output format
func (s *Settings) SetOutputFormat(format model.OutputFormat) {
	s.app.Preferences().SetString(KeyOutputFormat, string(format))
}

// GetQuality returns the last selected quality if it is valid for format
func (s *Settings) GetQuality(format model.OutputFormat) string {
	quality := s.app.Preferences().String(KeyQuality)
	for _, q := range options.QualityOptions(format) {
		if q == quality {
			return quality
		}
	}
	return DefaultQuality
}

// SetQuality sets the quality token
func (s *Settings) SetQuality(quality string) {
	s.app.Preferences().SetString(KeyQuality, quality)
}

// GetIncludePlaylist returns whether whole playlists are downloaded
func (s *Settings) GetIncludePlaylist() bool {
	return s.app.Preferences().BoolWithFallback(KeyIncludePlaylist, DefaultIncludePlaylist)
}

// SetIncludePlaylist sets the playlist flag
func (s *Settings) SetIncludePlaylist(include bool) {
	s.app.Preferences().SetBool(KeyIncludePlaylist, include)
}

// GetEmbedMetadata returns whether metadata is written into the output file
func (s *Settings) GetEmbedMetadata() bool {
	return s.app.Preferences().BoolWithFallback(KeyEmbedMetadata, DefaultEmbedMetadata)
}

// SetEmbedMetadata sets the metadata flag
func (s *Settings) SetEmbedMetadata(embed bool) {
	s.app.Preferences().SetBool(KeyEmbedMetadata, embed)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// SaveRequest remembers the selections of a started download
func (s *Settings) SaveRequest(req model.DownloadRequest) {
	s.SetDownloadDirectory(req.DownloadPath)
	s.SetOutputFormat(req.OutputFormat)
	s.SetQuality(req.Quality)
	s.SetIncludePlaylist(req.IncludePlaylist)
	s.SetEmbedMetadata(req.EmbedMetadata)
}
