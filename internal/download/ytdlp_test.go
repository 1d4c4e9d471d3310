package download

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"testing"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/youtomp3/internal/model"
	"github.com/ytget/youtomp3/internal/options"
)

type fakePlaylists struct {
	info  *model.MediaInfo
	err   error
	calls int
}

func (f *fakePlaylists) List(context.Context, string) (*model.MediaInfo, error) {
	f.calls++
	return f.info, f.err
}

func TestNewYTDLP_Defaults(t *testing.T) {
	y := NewYTDLP(YTDLPOptions{}, nil, nil)
	assert.Equal(t, DefaultProgressInterval, y.opts.ProgressInterval)
	assert.Equal(t, DefaultProbeTimeout, y.opts.ProbeTimeout)
	assert.NotNil(t, y.logger)

	y = NewYTDLP(YTDLPOptions{ProgressInterval: time.Second, ProbeTimeout: time.Minute}, nil, nil)
	assert.Equal(t, time.Second, y.opts.ProgressInterval)
	assert.Equal(t, time.Minute, y.opts.ProbeTimeout)
}

func TestYTDLP_ProbeUsesNativePlaylist(t *testing.T) {
	lists := &fakePlaylists{info: &model.MediaInfo{Playlist: true, Entries: make([]model.MediaEntry, 3)}}
	y := NewYTDLP(YTDLPOptions{}, lists, nil)

	info, err := y.Probe(context.Background(), "https://www.youtube.com/playlist?list=PLx", model.DownloadConfiguration{})
	require.NoError(t, err)
	assert.Equal(t, 3, info.EntryCount())
	assert.Equal(t, 1, lists.calls)
}

func TestYTDLP_ProbeSkipsNativeWhenPlaylistDisabled(t *testing.T) {
	lists := &fakePlaylists{err: errors.New("unused")}
	y := NewYTDLP(YTDLPOptions{Binary: "/nonexistent/yt-dlp", ProbeTimeout: time.Second}, lists, nil)

	_, err := y.Probe(context.Background(), "https://www.youtube.com/watch?v=a&list=PLx", model.DownloadConfiguration{NoPlaylist: true})
	assert.Error(t, err)
	assert.Zero(t, lists.calls)
}

func TestToProgressEvent(t *testing.T) {
	ev, ok := toProgressEvent(ytdlp.ProgressUpdate{
		Status:          ytdlp.ProgressStatusDownloading,
		DownloadedBytes: 42,
		TotalBytes:      100,
	})
	require.True(t, ok)
	assert.Equal(t, model.PhaseDownloading, ev.Phase)
	assert.Equal(t, int64(42), ev.DownloadedBytes)
	require.NotNil(t, ev.TotalBytes)
	assert.Equal(t, int64(100), *ev.TotalBytes)

	ev, ok = toProgressEvent(ytdlp.ProgressUpdate{
		Status:          ytdlp.ProgressStatusDownloading,
		DownloadedBytes: 7,
	})
	require.True(t, ok)
	assert.Nil(t, ev.TotalBytes)

	ev, ok = toProgressEvent(ytdlp.ProgressUpdate{
		Status:   ytdlp.ProgressStatusFinished,
		Filename: "/tmp/a.webm",
	})
	require.True(t, ok)
	assert.Equal(t, model.PhaseFinished, ev.Phase)
	assert.Equal(t, "a.webm", ev.BaseName())

	_, ok = toProgressEvent(ytdlp.ProgressUpdate{})
	assert.False(t, ok)
}

func TestToMediaInfo(t *testing.T) {
	title := "Song"
	duration := 61.7
	info := toMediaInfo(&ytdlp.ExtractedInfo{Title: &title, Duration: &duration})
	assert.Equal(t, "Song", info.Title)
	assert.Equal(t, "61", info.DurationSeconds())
	assert.False(t, info.Playlist)

	first := "First"
	list := toMediaInfo(&ytdlp.ExtractedInfo{
		Title:   &title,
		Entries: []*ytdlp.ExtractedInfo{{ID: "a", Title: &first}, {ID: "b"}, nil},
	})
	assert.True(t, list.Playlist)
	require.Equal(t, 2, list.EntryCount())
	assert.Equal(t, "First", list.Entries[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=a", list.Entries[0].URL)

	assert.Equal(t, "Unknown", toMediaInfo(nil).DisplayTitle())
}

// commandFlags flattens the flag groups of the yt-dlp command built for cfg
func commandFlags(t *testing.T, cfg model.DownloadConfiguration) map[string]any {
	t.Helper()
	flags := NewYTDLP(YTDLPOptions{}, nil, nil).command(cfg).GetFlagConfig()
	require.NoError(t, flags.Validate())

	raw, err := json.Marshal(flags)
	require.NoError(t, err)
	var groups map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &groups))

	out := make(map[string]any)
	for _, group := range groups {
		var fields map[string]any
		if err := json.Unmarshal(group, &fields); err == nil {
			maps.Copy(out, fields)
		}
	}
	return out
}

func TestYTDLP_CommandFlags(t *testing.T) {
	tests := []struct {
		name    string
		req     model.DownloadRequest
		want    map[string]any
		missing []string
	}{
		{
			name: "audio with bitrate",
			req: model.DownloadRequest{
				OutputFormat: model.FormatAudio, Quality: "192", DownloadPath: "/music", EmbedMetadata: true,
			},
			want: map[string]any{
				"format":         options.AudioFormatSelector,
				"extract_audio":  true,
				"audio_format":   "mp3",
				"audio_quality":  "192",
				"embed_metadata": true,
				"no_playlist":    true,
				"ignore_errors":  true,
			},
			missing: []string{"recode_video"},
		},
		{
			name: "audio best keeps encoder default",
			req: model.DownloadRequest{
				OutputFormat: model.FormatAudio, Quality: "best", DownloadPath: "/music", IncludePlaylist: true,
			},
			want: map[string]any{
				"extract_audio": true,
				"audio_format":  "mp3",
				"ignore_errors": true,
			},
			missing: []string{"audio_quality", "embed_metadata", "no_playlist", "recode_video"},
		},
		{
			name: "video",
			req: model.DownloadRequest{
				OutputFormat: model.FormatVideo, Quality: "720p", DownloadPath: "/videos", EmbedMetadata: true,
			},
			want: map[string]any{
				"format":         options.VideoSelector("720p"),
				"recode_video":   "mp4",
				"embed_metadata": true,
				"no_playlist":    true,
				"ignore_errors":  true,
			},
			missing: []string{"extract_audio", "audio_format", "audio_quality"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := commandFlags(t, options.Build(tt.req))
			for key, want := range tt.want {
				assert.Equal(t, want, flags[key], key)
			}
			for _, key := range tt.missing {
				assert.NotContains(t, flags, key)
			}
		})
	}
}
