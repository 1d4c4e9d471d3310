// Package download runs a single download on a background goroutine.
//
// A Worker validates the request, resolves metadata, hands the derived
// configuration to the extraction collaborator (yt-dlp through
// github.com/lrstanley/go-ytdlp) and reports every step as an Event.
// Exactly one EventDone is emitted per run, whatever the outcome.
package download
