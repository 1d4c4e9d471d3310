package model

// Package model defines domain data structures shared across the app: the
// download request captured from the form, the declarative configuration
// handed to yt-dlp, progress events, probe results, and lifecycle enums.
// Values are plain structs passed by value between the UI and the worker.
