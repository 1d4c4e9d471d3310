package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	nativeyt "github.com/ytget/ytdlp/v2"

	"github.com/ytget/youtomp3/internal/model"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// PlaylistQueryParam is the query parameter carrying a playlist ID
const PlaylistQueryParam = "list"

// VideoURLTemplate builds a watch URL from a video ID
const VideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// Playlist title constants
const (
	MinPrefixLength = 10
	PlaylistSuffix  = " Playlist"
	DefaultPlaylist = "Unknown Playlist"
)

type fetchFunc func(ctx context.Context, playlistID string) ([]model.MediaEntry, error)

// PlaylistLister enumerates playlist entries with the native Go extractor,
// without spawning yt-dlp.
type PlaylistLister struct {
	timeout time.Duration
	fetch   fetchFunc
}

// NewPlaylistLister creates a lister backed by github.com/ytget/ytdlp/v2
func NewPlaylistLister() *PlaylistLister {
	return &PlaylistLister{
		timeout: DefaultParseTimeout,
		fetch:   fetchNative,
	}
}

// SetTimeout sets the timeout for listing operations
func (p *PlaylistLister) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether the URL carries a playlist ID
func IsPlaylistURL(rawURL string) bool {
	return ExtractPlaylistID(rawURL) != ""
}

// ExtractPlaylistID returns the list= query value or an empty string
func ExtractPlaylistID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.Query().Get(PlaylistQueryParam))
}

// List resolves the playlist behind rawURL into a MediaInfo with one entry per video
func (p *PlaylistLister) List(ctx context.Context, rawURL string) (*model.MediaInfo, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	return &model.MediaInfo{
		Title:    playlistTitle(entries),
		Playlist: true,
		Entries:  entries,
	}, nil
}

func fetchNative(ctx context.Context, playlistID string) ([]model.MediaEntry, error) {
	d := nativeyt.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]model.MediaEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.MediaEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(VideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}

// playlistTitle derives a title from the common prefix of the first two entries
func playlistTitle(entries []model.MediaEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylist
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

// commonPrefix compares rune by rune so the prefix never ends inside a character
func commonPrefix(s1, s2 string) string {
	i := 0
	for i < len(s1) && i < len(s2) {
		r1, size1 := utf8.DecodeRuneInString(s1[i:])
		r2, size2 := utf8.DecodeRuneInString(s2[i:])
		if r1 != r2 || size1 != size2 {
			break
		}
		i += size1
	}
	return s1[:i]
}
