package model

import (
	"strings"
)

// OutputFormat selects between audio-only and video downloads
type OutputFormat string

const (
	// FormatAudio extracts the audio track into an MP3 file
	FormatAudio OutputFormat = "mp3"

	// FormatVideo downloads video and converts it into an MP4 container
	FormatVideo OutputFormat = "mp4"
)

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	return string(f)
}

// Extension returns the fixed file extension used in the output template
func (f OutputFormat) Extension() string {
	if f == FormatVideo {
		return "mp4"
	}
	return "mp3"
}

// Label returns the upper-case name used in log lines and button captions
func (f OutputFormat) Label() string {
	return strings.ToUpper(f.Extension())
}

// IsAudio reports whether the format is audio-only
func (f OutputFormat) IsAudio() bool {
	return f != FormatVideo
}

// DownloadRequest is a snapshot of the form taken when the user starts a download
type DownloadRequest struct {
	URL             string       `validate:"required"`
	OutputFormat    OutputFormat `validate:"required,oneof=mp3 mp4"`
	Quality         string       // bitrate token ("192") or resolution token ("720p"); "best" by default
	DownloadPath    string       `validate:"required"`
	IncludePlaylist bool
	EmbedMetadata   bool
}

// Normalized returns a copy with surrounding whitespace removed from text fields
func (r DownloadRequest) Normalized() DownloadRequest {
	r.URL = strings.TrimSpace(r.URL)
	r.Quality = strings.TrimSpace(r.Quality)
	r.DownloadPath = strings.TrimSpace(r.DownloadPath)
	return r
}
