package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tubescribe/internal/captions"
	"tubescribe/internal/media"
	"tubescribe/internal/transcribe"
)

type fakeCaptions struct {
	entries []captions.Entry
	err     error
	calls   int
}

func (f *fakeCaptions) Fetch(_ context.Context, videoID string) ([]captions.Entry, error) {
	f.calls++
	return f.entries, f.err
}

type fakeDownloader struct {
	err      error
	calls    int
	lastDir  string
	lastURL  string
	filename string
}

func (f *fakeDownloader) DownloadAudio(_ context.Context, videoURL, destDir string) (string, error) {
	f.calls++
	f.lastDir = destDir
	f.lastURL = videoURL
	if f.err != nil {
		return "", f.err
	}
	name := f.filename
	if name == "" {
		name = "audio.mp3"
	}
	path := filepath.Join(destDir, name)
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

var testVideo = media.VideoEntry{ID: "vid1", Title: "A Video", UploadDate: "20240101"}

func TestAcquirePrimarySucceeds(t *testing.T) {
	source := &fakeCaptions{entries: []captions.Entry{{Start: 0, Text: "hello"}, {Start: 61, Text: "bye"}}}
	downloader := &fakeDownloader{}
	service := NewService(source, downloader, transcribe.Disabled{}, t.TempDir(), nil)

	result := service.Acquire(context.Background(), testVideo)
	if result.Source != SourcePrimary {
		t.Fatalf("source = %v", result.Source)
	}
	if result.Text != "[00:00] hello\n[01:01] bye" {
		t.Errorf("text = %q", result.Text)
	}
	if downloader.calls != 0 {
		t.Error("fallback ran despite primary success")
	}
}

func TestAcquireFallbackSucceeds(t *testing.T) {
	source := &fakeCaptions{err: captions.ErrNoCaptions}
	downloader := &fakeDownloader{}
	transcriber := &fakeTranscriber{text: "generated words"}
	service := NewService(source, downloader, transcriber, t.TempDir(), nil)

	result := service.Acquire(context.Background(), testVideo)
	if result.Source != SourceFallback {
		t.Fatalf("source = %v", result.Source)
	}
	if result.Text != "generated words" {
		t.Errorf("text = %q", result.Text)
	}
	if downloader.lastURL != media.WatchURL("vid1") {
		t.Errorf("download url = %q", downloader.lastURL)
	}
}

func TestAcquireCleansUpScratchDir(t *testing.T) {
	tempRoot := t.TempDir()
	source := &fakeCaptions{err: captions.ErrNoCaptions}
	downloader := &fakeDownloader{}
	transcriber := &fakeTranscriber{text: "ok"}
	service := NewService(source, downloader, transcriber, tempRoot, nil)

	service.Acquire(context.Background(), testVideo)

	if downloader.lastDir == "" {
		t.Fatal("downloader never ran")
	}
	if _, err := os.Stat(downloader.lastDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("scratch dir %q not removed: %v", downloader.lastDir, err)
	}
}

func TestAcquireCleansUpScratchDirOnFailure(t *testing.T) {
	tempRoot := t.TempDir()
	source := &fakeCaptions{err: captions.ErrNoCaptions}
	downloader := &fakeDownloader{}
	transcriber := &fakeTranscriber{err: errors.New("model crashed")}
	service := NewService(source, downloader, transcriber, tempRoot, nil)

	result := service.Acquire(context.Background(), testVideo)
	if result.Available() {
		t.Fatal("expected unavailable result")
	}
	if _, err := os.Stat(downloader.lastDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("scratch dir %q not removed after failure: %v", downloader.lastDir, err)
	}
}

func TestAcquireBothPathsFail(t *testing.T) {
	tests := []struct {
		name       string
		captionErr error
	}{
		{"no captions", captions.ErrNoCaptions},
		{"rate limited", captions.ErrTooManyRequests},
		{"private video", captions.ErrUnavailable},
		{"transport error", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeCaptions{err: tt.captionErr}
			downloader := &fakeDownloader{err: media.ErrDownload}
			transcriber := &fakeTranscriber{text: "never reached"}
			service := NewService(source, downloader, transcriber, t.TempDir(), nil)

			result := service.Acquire(context.Background(), testVideo)
			if result.Available() {
				t.Fatal("expected unavailable result")
			}
			if result.Source != SourceNone {
				t.Errorf("source = %v", result.Source)
			}
			if result.Text != "" {
				t.Errorf("text = %q", result.Text)
			}
			if transcriber.calls != 0 {
				t.Error("transcriber ran despite download failure")
			}
		})
	}
}

func TestAcquireDisabledFallbackSkipsDownload(t *testing.T) {
	source := &fakeCaptions{err: captions.ErrNoCaptions}
	downloader := &fakeDownloader{}
	service := NewService(source, downloader, transcribe.Disabled{}, t.TempDir(), nil)

	result := service.Acquire(context.Background(), testVideo)
	if result.Available() {
		t.Fatal("expected unavailable result")
	}
	if downloader.calls != 0 {
		t.Error("audio downloaded although no transcription backend is configured")
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourcePrimary, "youtube_api"},
		{SourceFallback, "whisper"},
		{SourceNone, "none"},
	}
	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}
