package platform

// Package platform contains OS integration and external tooling glue:
// filesystem helpers, opening the destination folder, and native playlist
// listing through github.com/ytget/ytdlp/v2.
