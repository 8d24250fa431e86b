package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tubescribe/internal/media"
	"tubescribe/internal/textutil"
)

const (
	titleRuneLimit = 50
	separator      = "=================================================="
)

// Dirs holds the resolved directories of one channel's output.
type Dirs struct {
	Channel     string
	Transcripts string
}

// MetadataPath returns where the aggregate record lives.
func (d Dirs) MetadataPath() string {
	return filepath.Join(d.Channel, "metadata.json")
}

// VideoRecord is one per-video entry in the aggregate metadata.
type VideoRecord struct {
	VideoID          string `json:"video_id"`
	Title            string `json:"title"`
	UploadDate       string `json:"upload_date"`
	TranscriptSource string `json:"transcript_source"`
	TranscriptFile   string `json:"transcript_file"`
}

// RunMetadata is the aggregate record written once at the end of a run.
// Every entry in Videos corresponds to a transcript file on disk.
type RunMetadata struct {
	ChannelURL   string        `json:"channel_url"`
	ChannelName  string        `json:"channel_name"`
	DownloadDate string        `json:"download_date"`
	Videos       []VideoRecord `json:"videos"`
}

// Writer persists transcripts and metadata under a fixed output root.
type Writer struct {
	root string
}

// NewWriter builds a writer rooted at the given output directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// EnsureDirs idempotently creates the channel's directory tree.
func (w *Writer) EnsureDirs(channelName string) (Dirs, error) {
	channelDir := filepath.Join(w.root, textutil.SanitizeName(channelName))
	dirs := Dirs{
		Channel:     channelDir,
		Transcripts: filepath.Join(channelDir, "transcripts"),
	}
	if err := os.MkdirAll(dirs.Transcripts, 0o755); err != nil {
		return Dirs{}, fmt.Errorf("create output directories: %w", err)
	}
	return dirs, nil
}

// TranscriptFilename derives the stable filename for a video's transcript.
func TranscriptFilename(video media.VideoEntry) string {
	title := textutil.TruncateRunes(textutil.SanitizeName(video.Title), titleRuneLimit)
	return fmt.Sprintf("%s_%s_%s.txt", video.UploadDate, title, video.ID)
}

// WriteTranscript writes one video's transcript file and returns its
// filename. An existing file with the same name is overwritten.
func (w *Writer) WriteTranscript(dirs Dirs, video media.VideoEntry, text, source string) (string, error) {
	filename := TranscriptFilename(video)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Title: %s\n", video.Title)
	fmt.Fprintf(&buf, "Video ID: %s\n", video.ID)
	fmt.Fprintf(&buf, "Upload Date: %s\n", video.UploadDate)
	fmt.Fprintf(&buf, "Transcript Source: %s\n", source)
	buf.WriteString("\n" + separator + "\n\n")
	buf.WriteString(text)

	path := filepath.Join(dirs.Transcripts, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write transcript %s: %w", filename, err)
	}
	return filename, nil
}

// WriteMetadata serializes the aggregate record as indented JSON, leaving
// non-ASCII characters unescaped, and overwrites any existing file.
func (w *Writer) WriteMetadata(dirs Dirs, metadata RunMetadata) (string, error) {
	if metadata.Videos == nil {
		metadata.Videos = []VideoRecord{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(metadata); err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	path := dirs.MetadataPath()
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return path, nil
}

// ReadMetadata loads a previously written aggregate record.
func ReadMetadata(path string) (*RunMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var metadata RunMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &metadata, nil
}

// Root returns the configured output root.
func (w *Writer) Root() string {
	return w.root
}
