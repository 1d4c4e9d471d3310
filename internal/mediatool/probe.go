package mediatool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Executable and flag constants
const (
	FFmpegCommand      = "ffmpeg"
	FFmpegVersionFlag  = "-version"
	FFmpegVersionToken = "version"
	YTDLPCommand       = "yt-dlp"
	YTDLPVersionFlag   = "--version"
)

// DefaultProbeTimeout bounds a single version check
const DefaultProbeTimeout = 10 * time.Second

// FFmpegDownloadURL is shown to the user when ffmpeg is missing
const FFmpegDownloadURL = "https://ffmpeg.org/download.html"

// ErrRefreshUnsupported is returned by the PATH refresher on systems without one
var ErrRefreshUnsupported = errors.New("PATH refresh is not supported on this platform")

// Tool describes an external binary and how to ask it for its version
type Tool struct {
	Name        string
	Command     string
	VersionFlag string
}

// FFmpeg returns the ffmpeg tool description; command may override the binary path
func FFmpeg(command string) Tool {
	if command == "" {
		command = FFmpegCommand
	}
	return Tool{Name: "ffmpeg", Command: command, VersionFlag: FFmpegVersionFlag}
}

// YTDLP returns the yt-dlp tool description; command may override the binary path
func YTDLP(command string) Tool {
	if command == "" {
		command = YTDLPCommand
	}
	return Tool{Name: "yt-dlp", Command: command, VersionFlag: YTDLPVersionFlag}
}

// Status is the outcome of probing one tool
type Status struct {
	Tool      Tool
	Available bool
	Version   string
	Refreshed bool // PATH was re-read before the successful probe
	Err       error
}

// String returns a one-line human description
func (s Status) String() string {
	if !s.Available {
		return fmt.Sprintf("%s not found: %v", s.Tool.Name, s.Err)
	}
	if s.Version == "" {
		return fmt.Sprintf("%s is available", s.Tool.Name)
	}
	return fmt.Sprintf("%s %s is available", s.Tool.Name, s.Version)
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Prober runs version checks
type Prober struct {
	run         runFunc
	refreshPath func() error
	timeout     time.Duration
	logger      *zap.Logger
}

// NewProber creates a prober that executes the real binaries
func NewProber(logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		run:         runCommand,
		refreshPath: RefreshPath,
		timeout:     DefaultProbeTimeout,
		logger:      logger,
	}
}

// Probe checks a single tool, refreshing PATH once if the first attempt fails
func (p *Prober) Probe(ctx context.Context, tool Tool) Status {
	status := p.probeOnce(ctx, tool)
	if status.Available || p.refreshPath == nil {
		return status
	}

	if err := p.refreshPath(); err != nil {
		if !errors.Is(err, ErrRefreshUnsupported) {
			p.logger.Warn("PATH refresh failed", zap.String("tool", tool.Name), zap.Error(err))
		}
		return status
	}

	retry := p.probeOnce(ctx, tool)
	if retry.Available {
		retry.Refreshed = true
		p.logger.Info("tool found after PATH refresh", zap.String("tool", tool.Name))
	}
	return retry
}

// ProbeAll checks every tool concurrently; results keep the order of tools
func (p *Prober) ProbeAll(ctx context.Context, tools ...Tool) []Status {
	results := make([]Status, len(tools))
	g, gctx := errgroup.WithContext(ctx)
	for i, tool := range tools {
		g.Go(func() error {
			results[i] = p.Probe(gctx, tool)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Prober) probeOnce(ctx context.Context, tool Tool) Status {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.run(ctx, tool.Command, tool.VersionFlag)
	if err != nil {
		p.logger.Debug("probe failed", zap.String("tool", tool.Name), zap.Error(err))
		return Status{Tool: tool, Err: err}
	}

	return Status{
		Tool:      tool,
		Available: true,
		Version:   ParseVersion(string(out)),
	}
}

// ParseVersion extracts the version token from the first output line.
// "ffmpeg version 6.1.1 Copyright ..." yields "6.1.1"; "2024.08.06" yields itself.
func ParseVersion(output string) string {
	line := strings.TrimSpace(output)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	fields := strings.Fields(line)
	for i, f := range fields {
		if f == FFmpegVersionToken && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	if len(fields) == 1 {
		return fields[0]
	}
	return ""
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	return cmd.Output()
}
