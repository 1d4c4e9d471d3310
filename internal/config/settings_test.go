package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/youtomp3/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	if got := settings.GetDownloadDirectory(); got != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, got)
	}
}

func TestOutputFormat(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetOutputFormat(); got != DefaultOutputFormat {
		t.Errorf("Expected default format %s, got %s", DefaultOutputFormat, got)
	}

	settings.SetOutputFormat(model.FormatVideo)
	if got := settings.GetOutputFormat(); got != model.FormatVideo {
		t.Errorf("Expected format %s, got %s", model.FormatVideo, got)
	}

	// unknown stored values fall back to the default
	app.Preferences().SetString(KeyOutputFormat, "flac")
	if got := settings.GetOutputFormat(); got != DefaultOutputFormat {
		t.Errorf("Expected fallback format %s, got %s", DefaultOutputFormat, got)
	}
}

func TestQuality(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetQuality(model.FormatAudio); got != DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", DefaultQuality, got)
	}

	settings.SetQuality("192")
	if got := settings.GetQuality(model.FormatAudio); got != "192" {
		t.Errorf("Expected quality 192, got %s", got)
	}

	// a bitrate is meaningless for video
	if got := settings.GetQuality(model.FormatVideo); got != DefaultQuality {
		t.Errorf("Expected video quality to fall back to %s, got %s", DefaultQuality, got)
	}
}

func TestFlags(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetIncludePlaylist() != DefaultIncludePlaylist {
		t.Error("Unexpected default playlist flag")
	}
	if settings.GetEmbedMetadata() != DefaultEmbedMetadata {
		t.Error("Unexpected default metadata flag")
	}

	settings.SetIncludePlaylist(true)
	settings.SetEmbedMetadata(false)

	if !settings.GetIncludePlaylist() {
		t.Error("Playlist flag should be true")
	}
	if settings.GetEmbedMetadata() {
		t.Error("Metadata flag should be false")
	}
}

func TestSaveRequest(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SaveRequest(model.DownloadRequest{
		URL:             "https://youtu.be/abc",
		OutputFormat:    model.FormatVideo,
		Quality:         "720p",
		DownloadPath:    "/videos",
		IncludePlaylist: true,
		EmbedMetadata:   false,
	})

	if settings.GetDownloadDirectory() != "/videos" {
		t.Errorf("Download directory not saved")
	}
	if settings.GetOutputFormat() != model.FormatVideo {
		t.Errorf("Format not saved")
	}
	if settings.GetQuality(model.FormatVideo) != "720p" {
		t.Errorf("Quality not saved")
	}
	if !settings.GetIncludePlaylist() || settings.GetEmbedMetadata() {
		t.Errorf("Flags not saved")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("ru")
	if lang := settings.GetLanguage(); lang != "ru" {
		t.Errorf("Expected language 'ru', got %s", lang)
	}
}
