package model

import "strings"

// ProgressPhase is the phase reported by the collaborator's progress hook
type ProgressPhase string

const (
	PhaseDownloading ProgressPhase = "downloading"
	PhaseFinished    ProgressPhase = "finished"
)

// ProgressEvent is a single progress notification produced during one download
type ProgressEvent struct {
	Phase           ProgressPhase
	DownloadedBytes int64
	TotalBytes      *int64 // nil when the size is unknown
	Filename        string // empty when the collaborator did not report it
}

// Percent returns the completed percentage and whether it could be computed
func (e ProgressEvent) Percent() (float64, bool) {
	if e.TotalBytes == nil || *e.TotalBytes <= 0 {
		return 0, false
	}
	return float64(e.DownloadedBytes) / float64(*e.TotalBytes) * 100, true
}

// BaseName returns the file name without directories. Both / and \ separate
// directories regardless of the host OS.
func (e ProgressEvent) BaseName() string {
	name := strings.TrimRight(e.Filename, `/\`)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
