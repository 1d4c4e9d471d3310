package mediatool

// Package mediatool probes the external binaries the download pipeline
// depends on (ffmpeg for post-processing, yt-dlp for extraction) and reports
// whether they can be executed. On Windows a failed probe re-reads PATH from
// the registry and retries once.
