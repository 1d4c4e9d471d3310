package controller

import "github.com/ytget/youtomp3/internal/model"

// State is the mutable form and worker state of the window
type State struct {
	Worker       model.WorkerState
	RunID        string
	Format       model.OutputFormat
	Quality      string
	DownloadPath string
}

// IsRunning reports whether a worker is in flight
func (s State) IsRunning() bool {
	return s.Worker.IsRunning()
}
