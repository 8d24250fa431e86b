// Package media defines the narrow capability interfaces the pipeline needs
// from the video platform: channel resolution, video enumeration, and audio
// download. Implementations live in subpackages (ytdlp wraps the external
// yt-dlp binary); tests substitute deterministic fakes.
package media

import (
	"context"
	"errors"
)

// VideoEntry describes one discovered video. Produced in bulk by a Lister and
// read-only afterward.
type VideoEntry struct {
	ID         string
	Title      string
	UploadDate string
}

// Listing is the result of enumerating a channel.
type Listing struct {
	ChannelID   string
	ChannelName string
	Videos      []VideoEntry
}

// Lister enumerates the videos of a channel. The limit caps how many entries
// are returned; zero means no cap.
type Lister interface {
	ListChannelVideos(ctx context.Context, channelURL string, limit int) (*Listing, error)
}

// ChannelResolver resolves a legacy custom-name or username URL to the
// canonical channel id. Used by the identifier resolver for URL shapes that
// cannot be resolved locally.
type ChannelResolver interface {
	ResolveChannelID(ctx context.Context, channelURL string) (string, error)
}

// AudioDownloader fetches a video's audio track into destDir and returns the
// local file path. The caller owns destDir and its cleanup.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoURL, destDir string) (string, error)
}

var (
	// ErrChannelFetch marks a failed channel resolution or enumeration.
	// Fatal for the run.
	ErrChannelFetch = errors.New("channel fetch failed")
	// ErrDownload marks a failed audio download. Recoverable per video.
	ErrDownload = errors.New("audio download failed")
)

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
