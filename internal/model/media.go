package model

import (
	"fmt"
	"time"
)

// Default values for probe results
const (
	DefaultTitle    = "Unknown"
	DefaultDuration = "Unknown"
)

// MediaEntry is one resolvable item of a playlist or channel
type MediaEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MediaInfo is the outcome of a metadata-only resolution of a URL
type MediaInfo struct {
	Title    string        `json:"title"`
	Duration time.Duration `json:"duration"`
	Playlist bool          `json:"playlist"`
	Entries  []MediaEntry  `json:"entries,omitempty"`
}

// EntryCount returns the number of entries in a playlist result
func (m *MediaInfo) EntryCount() int {
	return len(m.Entries)
}

// DisplayTitle returns the title or a placeholder
func (m *MediaInfo) DisplayTitle() string {
	if m.Title == "" {
		return DefaultTitle
	}
	return m.Title
}

// DurationSeconds returns the duration in whole seconds, or the placeholder when unknown
func (m *MediaInfo) DurationSeconds() string {
	if m.Duration <= 0 {
		return DefaultDuration
	}
	return fmt.Sprintf("%d", int64(m.Duration/time.Second))
}
