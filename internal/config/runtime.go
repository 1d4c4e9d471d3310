package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ytget/youtomp3/internal/validation"
	"github.com/ytget/youtomp3/pkg/logger"
)

// Environment and file lookup
const (
	EnvPrefix      = "YOUTOMP3"
	ConfigName     = "config"
	ConfigType     = "yaml"
	UserConfigDir  = "$HOME/.youtomp3"
	LocalConfigDir = "./configs"
)

// Runtime is the process-level configuration loaded once at startup
type Runtime struct {
	YTDLP   YTDLPConfig   `mapstructure:"ytdlp"`
	FFmpeg  FFmpegConfig  `mapstructure:"ffmpeg"`
	History HistoryConfig `mapstructure:"history"`
	Logging logger.Config `mapstructure:"logging"`
}

// YTDLPConfig configures the extraction collaborator
type YTDLPConfig struct {
	Binary           string        `mapstructure:"binary"`
	ProgressInterval time.Duration `mapstructure:"progress_interval" validate:"gt=0"`
	ProbeTimeout     time.Duration `mapstructure:"probe_timeout" validate:"gt=0"`
}

// FFmpegConfig configures the media tool probe and the location handed to yt-dlp
type FFmpegConfig struct {
	Binary   string `mapstructure:"binary"`
	Location string `mapstructure:"location"`
}

// HistoryConfig configures the run history database
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path" validate:"required_if=Enabled true"`
	Limit        int    `mapstructure:"limit" validate:"gte=1,lte=500"`
}

// DefaultRuntime returns a configuration with default values
func DefaultRuntime() *Runtime {
	return &Runtime{
		YTDLP: YTDLPConfig{
			ProgressInterval: 500 * time.Millisecond,
			ProbeTimeout:     60 * time.Second,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/.youtomp3/history.db",
			Limit:        50,
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// LoadRuntime loads configuration from file and environment.
// An empty configPath searches the standard locations; a missing file is not an error.
func LoadRuntime(configPath string) (*Runtime, error) {
	cfg := DefaultRuntime()

	v := viper.New()
	v.SetConfigType(ConfigType)
	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(LocalConfigDir)
		v.AddConfigPath(UserConfigDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.History.DatabasePath = expandPath(cfg.History.DatabasePath)
	cfg.FFmpeg.Location = expandPath(cfg.FFmpeg.Location)
	if cfg.Logging.OutputPath != "stdout" && cfg.Logging.OutputPath != "stderr" {
		cfg.Logging.OutputPath = expandPath(cfg.Logging.OutputPath)
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override values absent from the file
func setDefaults(v *viper.Viper, cfg *Runtime) {
	v.SetDefault("ytdlp.binary", cfg.YTDLP.Binary)
	v.SetDefault("ytdlp.progress_interval", cfg.YTDLP.ProgressInterval)
	v.SetDefault("ytdlp.probe_timeout", cfg.YTDLP.ProbeTimeout)
	v.SetDefault("ffmpeg.binary", cfg.FFmpeg.Binary)
	v.SetDefault("ffmpeg.location", cfg.FFmpeg.Location)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.database_path", cfg.History.DatabasePath)
	v.SetDefault("history.limit", cfg.History.Limit)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output_path", cfg.Logging.OutputPath)
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}
