package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tubescribe/internal/media"
)

const defaultBinary = "yt-dlp"

// UnknownChannel is the channel name used when yt-dlp reports none.
const UnknownChannel = "Unknown_Channel"

// UnknownDate is the upload date used when yt-dlp reports none.
const UnknownDate = "unknown"

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client shells out to yt-dlp. It implements media.Lister,
// media.ChannelResolver, and media.AudioDownloader.
type Client struct {
	binary  string
	timeout time.Duration
	runner  Runner
}

// Option configures the client.
type Option func(*Client)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithTimeout bounds each yt-dlp invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRunner sets a custom command runner (for testing).
func WithRunner(runner Runner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// NewClient constructs a client using defaults.
func NewClient(opts ...Option) *Client {
	client := &Client{
		binary:  defaultBinary,
		timeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.runner == nil {
		client.runner = client.execRunner
	}
	return client
}

func (c *Client) execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
	}
	return stdout.Bytes(), nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.runner(runCtx, c.binary, args...)
}

// channelProbe is the subset of yt-dlp's single-JSON playlist output we use.
type channelProbe struct {
	ChannelID string `json:"channel_id"`
	Channel   string `json:"channel"`
	Uploader  string `json:"uploader"`
}

func (c *Client) probeChannel(ctx context.Context, channelURL string) (*channelProbe, error) {
	out, err := c.run(ctx,
		"--dump-single-json",
		"--flat-playlist",
		"--playlist-items", "0",
		"--no-warnings",
		channelURL,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: probe %q: %w", media.ErrChannelFetch, channelURL, err)
	}

	var probe channelProbe
	if err := json.Unmarshal(bytes.TrimSpace(out), &probe); err != nil {
		return nil, fmt.Errorf("%w: parse probe output: %w", media.ErrChannelFetch, err)
	}
	if probe.ChannelID == "" {
		return nil, fmt.Errorf("%w: no channel id in yt-dlp output for %q", media.ErrChannelFetch, channelURL)
	}
	return &probe, nil
}

// ResolveChannelID resolves a channel URL to its canonical channel id.
func (c *Client) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	probe, err := c.probeChannel(ctx, channelURL)
	if err != nil {
		return "", err
	}
	return probe.ChannelID, nil
}

// flatEntry is one line of yt-dlp's flat-playlist JSON enumeration.
type flatEntry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	UploadDate string `json:"upload_date"`
}

// ListChannelVideos enumerates a channel's uploads, newest first, bounded by
// limit (zero = unlimited). Entries without an id or title are dropped, and
// duplicate ids keep their first occurrence.
func (c *Client) ListChannelVideos(ctx context.Context, channelURL string, limit int) (*media.Listing, error) {
	probe, err := c.probeChannel(ctx, channelURL)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(probe.Channel)
	if name == "" {
		name = strings.TrimSpace(probe.Uploader)
	}
	if name == "" {
		name = UnknownChannel
	}

	uploadsURL := "https://www.youtube.com/channel/" + probe.ChannelID + "/videos"
	args := []string{
		"--dump-json",
		"--flat-playlist",
		"--ignore-errors",
		"--no-warnings",
	}
	if limit > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(limit))
	}
	args = append(args, uploadsURL)

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: enumerate %q: %w", media.ErrChannelFetch, uploadsURL, err)
	}

	listing := &media.Listing{
		ChannelID:   probe.ChannelID,
		ChannelName: name,
	}
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry flatEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.ID == "" || entry.Title == "" {
			continue
		}
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}
		date := strings.TrimSpace(entry.UploadDate)
		if date == "" {
			date = UnknownDate
		}
		listing.Videos = append(listing.Videos, media.VideoEntry{
			ID:         entry.ID,
			Title:      entry.Title,
			UploadDate: date,
		})
		if limit > 0 && len(listing.Videos) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read enumeration output: %w", media.ErrChannelFetch, err)
	}

	return listing, nil
}

// DownloadAudio fetches a video's audio track as mp3 into destDir.
func (c *Client) DownloadAudio(ctx context.Context, videoURL, destDir string) (string, error) {
	if destDir == "" {
		return "", fmt.Errorf("%w: destination directory required", media.ErrDownload)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: ensure destination: %w", media.ErrDownload, err)
	}

	template := filepath.Join(destDir, "audio.%(ext)s")
	_, err := c.run(ctx,
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--output", template,
		videoURL,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", media.ErrDownload, err)
	}

	audioPath := filepath.Join(destDir, "audio.mp3")
	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: yt-dlp produced no audio file", media.ErrDownload)
		}
		return "", fmt.Errorf("%w: stat audio file: %w", media.ErrDownload, err)
	}
	return audioPath, nil
}

var (
	_ media.Lister          = (*Client)(nil)
	_ media.ChannelResolver = (*Client)(nil)
	_ media.AudioDownloader = (*Client)(nil)
)
