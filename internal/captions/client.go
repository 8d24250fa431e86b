package captions

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNoCaptions means the video has no caption tracks.
	ErrNoCaptions = errors.New("no caption tracks")
	// ErrTooManyRequests means the platform served a captcha wall.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrUnavailable means the video cannot be played (private, removed).
	ErrUnavailable = errors.New("video unavailable")
)

const defaultWatchBase = "https://www.youtube.com"

// Entry is one timed caption line.
type Entry struct {
	Start float64
	Text  string
}

// Client fetches caption tracks for videos.
type Client struct {
	httpClient *http.Client
	watchBase  string
	languages  []string
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithWatchBase overrides the watch page base URL (for testing).
func WithWatchBase(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.watchBase = strings.TrimSuffix(base, "/")
		}
	}
}

// WithLanguages sets the caption language preference order.
func WithLanguages(languages []string) Option {
	return func(c *Client) {
		if len(languages) > 0 {
			c.languages = languages
		}
	}
}

// NewClient constructs a caption client with an English preference.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		watchBase:  defaultWatchBase,
		languages:  []string{"en"},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// trackList mirrors the caption portion of the watch page player JSON.
type trackList struct {
	PlayerCaptionsTracklistRenderer struct {
		CaptionTracks []track `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type track struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// timedText mirrors the timed-text XML a caption track points at.
type timedText struct {
	Entries []struct {
		Text  string  `xml:",chardata"`
		Start float64 `xml:"start,attr"`
	} `xml:"text"`
}

// Fetch returns the timed caption entries for a video, in document order.
func (c *Client) Fetch(ctx context.Context, videoID string) ([]Entry, error) {
	page, err := c.get(ctx, c.watchBase+"/watch?v="+videoID)
	if err != nil {
		return nil, fmt.Errorf("watch page for %q: %w", videoID, err)
	}

	rawTracks, err := extractTrackJSON(page)
	if err != nil {
		return nil, fmt.Errorf("video %q: %w", videoID, err)
	}

	var list trackList
	if err := json.Unmarshal([]byte(rawTracks), &list); err != nil {
		return nil, fmt.Errorf("parse caption track list for %q: %w", videoID, err)
	}

	best := bestTrack(list.PlayerCaptionsTracklistRenderer.CaptionTracks, c.languages)
	if best == nil {
		return nil, fmt.Errorf("video %q: %w", videoID, ErrNoCaptions)
	}

	body, err := c.get(ctx, best.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("caption track for %q: %w", videoID, err)
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse timed text for %q: %w", videoID, err)
	}
	if len(doc.Entries) == 0 {
		return nil, fmt.Errorf("video %q: empty caption document: %w", videoID, ErrNoCaptions)
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for _, item := range doc.Entries {
		entries = append(entries, Entry{Start: item.Start, Text: item.Text})
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return body, nil
}

// extractTrackJSON pulls the caption track list JSON out of the watch page.
// The page is not parsed as HTML; the player JSON sits in a script tag and
// the "captions" object is delimited by the "videoDetails" key that follows.
func extractTrackJSON(page []byte) (string, error) {
	content := string(page)

	_, after, found := strings.Cut(content, `"captions":`)
	if !found {
		if strings.Contains(content, `class="g-recaptcha"`) {
			return "", ErrTooManyRequests
		}
		if strings.Contains(content, `"playabilityStatus"`) && strings.Contains(content, `"ERROR"`) {
			return "", ErrUnavailable
		}
		return "", ErrNoCaptions
	}

	raw, _, found := strings.Cut(after, `,"videoDetails`)
	if !found {
		return "", fmt.Errorf("caption JSON not terminated: %w", ErrNoCaptions)
	}
	return strings.ReplaceAll(raw, "\n", ""), nil
}

// bestTrack picks a manually created track in the first matching preferred
// language, then any track in a preferred language, then any manually
// created track, then the first track.
func bestTrack(tracks []track, languages []string) *track {
	for _, lang := range languages {
		for i, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return &tracks[i]
			}
		}
	}
	for _, lang := range languages {
		for i, t := range tracks {
			if t.LanguageCode == lang {
				return &tracks[i]
			}
		}
	}
	for i, t := range tracks {
		if t.Kind != "asr" {
			return &tracks[i]
		}
	}
	if len(tracks) > 0 {
		return &tracks[0]
	}
	return nil
}
