package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadRuntime_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRuntime("")
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.YTDLP.ProgressInterval)
	assert.Equal(t, 60*time.Second, cfg.YTDLP.ProbeTimeout)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.OutputPath)
	assert.NotContains(t, cfg.History.DatabasePath, "$HOME")
}

func TestLoadRuntime_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
ytdlp:
  binary: /opt/bin/yt-dlp
  progress_interval: 1s
ffmpeg:
  location: /opt/ffmpeg/bin
history:
  limit: 10
logging:
  level: debug
  format: json
`)

	cfg, err := LoadRuntime(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/bin/yt-dlp", cfg.YTDLP.Binary)
	assert.Equal(t, time.Second, cfg.YTDLP.ProgressInterval)
	assert.Equal(t, 60*time.Second, cfg.YTDLP.ProbeTimeout)
	assert.Equal(t, "/opt/ffmpeg/bin", cfg.FFmpeg.Location)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRuntime_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
`)
	t.Setenv("YOUTOMP3_LOGGING_LEVEL", "warn")
	t.Setenv("YOUTOMP3_FFMPEG_BINARY", "/usr/local/bin/ffmpeg")

	cfg, err := LoadRuntime(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpeg.Binary)
}

func TestLoadRuntime_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad level", "logging:\n  level: chatty\n"},
		{"limit too high", "history:\n  limit: 9999\n"},
		{"enabled without path", "history:\n  enabled: true\n  database_path: \"\"\n"},
		{"broken yaml", "ytdlp: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRuntime(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "music"), expandPath("~/music"))
	assert.Equal(t, "", expandPath(""))

	t.Setenv("YOUTOMP3_TEST_DIR", "/data")
	assert.Equal(t, "/data/history.db", expandPath("$YOUTOMP3_TEST_DIR/history.db"))
}
