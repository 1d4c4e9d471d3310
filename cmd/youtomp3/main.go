package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ytget/youtomp3/internal/config"
	"github.com/ytget/youtomp3/internal/controller"
	"github.com/ytget/youtomp3/internal/download"
	"github.com/ytget/youtomp3/internal/history"
	"github.com/ytget/youtomp3/internal/mediatool"
	"github.com/ytget/youtomp3/internal/platform"
	"github.com/ytget/youtomp3/internal/ui"
	"github.com/ytget/youtomp3/pkg/logger"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

const (
	appID         = "com.ytget.youtomp3"
	configPathEnv = "YOUTOMP3_CONFIG"
)

func main() {
	// boot logs until the configured logger exists
	boot := logger.NewDefault()
	if err := run(boot); err != nil {
		boot.Error("youtomp3 failed", zap.Error(err))
		_ = boot.Sync()
		os.Exit(1)
	}
}

func run(boot *zap.Logger) error {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		boot.Debug("No .env file loaded", zap.Error(err))
	}

	configPath := os.Getenv(configPathEnv)
	cfg, err := config.LoadRuntime(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting youtomp3", zap.String("version", version))

	statuses := mediatool.NewProber(logger.Component(log, "mediatool")).ProbeAll(
		context.Background(),
		mediatool.FFmpeg(ffmpegCommand(cfg.FFmpeg)),
		mediatool.YTDLP(cfg.YTDLP.Binary),
	)
	ffmpeg, ytdlp := statuses[0], statuses[1]
	for _, st := range statuses {
		if st.Available {
			log.Info(st.String(), zap.Bool("path_refreshed", st.Refreshed))
		} else {
			log.Warn(st.String())
		}
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.DatabasePath)
		if err != nil {
			log.Warn("History disabled", zap.String("path", cfg.History.DatabasePath), zap.Error(err))
		} else {
			defer func() { _ = store.Close() }()
		}
	}

	a := app.NewWithID(appID)
	settings := config.NewSettings(a)
	localization := ui.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	window := a.NewWindow(localization.GetText(ui.KeyAppTitle))
	window.SetMaster()
	window.CenterOnScreen()

	view := ui.NewRootUI(window, settings, localization, logger.Component(log, "ui"))
	view.SetHistoryLimit(cfg.History.Limit)

	lister := platform.NewPlaylistLister()
	lister.SetTimeout(cfg.YTDLP.ProbeTimeout)
	extractor := download.NewYTDLP(download.YTDLPOptions{
		Binary:           cfg.YTDLP.Binary,
		FFmpegLocation:   cfg.FFmpeg.Location,
		ProgressInterval: cfg.YTDLP.ProgressInterval,
		ProbeTimeout:     cfg.YTDLP.ProbeTimeout,
	}, lister, logger.Component(log, "ytdlp"))

	deps := controller.Deps{
		View:        view,
		Runner:      download.NewWorker(extractor, logger.Component(log, "worker")),
		Dispatch:    fyne.Do,
		Preferences: settings,
		Logger:      logger.Component(log, "controller"),
	}
	if store != nil {
		deps.History = store
	}
	ctrl := controller.New(deps)
	view.Bind(ctrl)

	format := settings.GetOutputFormat()
	ctrl.Init(format, settings.GetQuality(format), settings.GetDownloadDirectory())
	if !ytdlp.Available {
		ctrl.Reporter().Log("Warning: " + ytdlp.String())
	}

	if ffmpeg.Available {
		window.ShowAndRun()
		return nil
	}

	ui.ConfirmMissingFFmpeg(a, localization, mediatool.FFmpegDownloadURL, func(proceed bool) {
		if !proceed {
			log.Info("User declined to continue without ffmpeg")
			a.Quit()
			return
		}
		window.Show()
	})
	a.Run()
	return nil
}

// ffmpegCommand resolves the ffmpeg binary from the configured path or directory
func ffmpegCommand(cfg config.FFmpegConfig) string {
	if cfg.Binary != "" {
		return cfg.Binary
	}
	if cfg.Location != "" {
		return filepath.Join(cfg.Location, "ffmpeg")
	}
	return ""
}
