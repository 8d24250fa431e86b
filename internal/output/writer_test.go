package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tubescribe/internal/media"
)

func TestEnsureDirsIdempotent(t *testing.T) {
	writer := NewWriter(t.TempDir())

	dirs, err := writer.EnsureDirs(`My "Channel" / Name`)
	if err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if filepath.Base(dirs.Channel) != "My Channel  Name" {
		t.Errorf("channel dir = %q", dirs.Channel)
	}
	if filepath.Base(dirs.Transcripts) != "transcripts" {
		t.Errorf("transcripts dir = %q", dirs.Transcripts)
	}

	// Second call against existing directories must not fail.
	again, err := writer.EnsureDirs(`My "Channel" / Name`)
	if err != nil {
		t.Fatalf("EnsureDirs (repeat): %v", err)
	}
	if again != dirs {
		t.Errorf("repeat EnsureDirs gave %+v, want %+v", again, dirs)
	}
}

func TestTranscriptFilename(t *testing.T) {
	tests := []struct {
		name  string
		video media.VideoEntry
		want  string
	}{
		{
			name:  "plain",
			video: media.VideoEntry{ID: "vid1", Title: "A Title", UploadDate: "20240101"},
			want:  "20240101_A Title_vid1.txt",
		},
		{
			name:  "unsafe characters stripped",
			video: media.VideoEntry{ID: "vid2", Title: `What is "Go"? <part 1/2>`, UploadDate: "20240201"},
			want:  "20240201_What is Go part 12_vid2.txt",
		},
		{
			name: "long title truncated to 50 runes",
			video: media.VideoEntry{
				ID:         "vid3",
				Title:      strings.Repeat("a", 80),
				UploadDate: "20240301",
			},
			want: "20240301_" + strings.Repeat("a", 50) + "_vid3.txt",
		},
		{
			name:  "unknown date",
			video: media.VideoEntry{ID: "vid4", Title: "T", UploadDate: "unknown"},
			want:  "unknown_T_vid4.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranscriptFilename(tt.video); got != tt.want {
				t.Errorf("TranscriptFilename = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteTranscriptLayout(t *testing.T) {
	writer := NewWriter(t.TempDir())
	dirs, err := writer.EnsureDirs("Chan")
	if err != nil {
		t.Fatal(err)
	}

	video := media.VideoEntry{ID: "vid1", Title: "Ünïcode Title", UploadDate: "20240101"}
	filename, err := writer.WriteTranscript(dirs, video, "[00:00] héllo wörld", "youtube_api")
	if err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dirs.Transcripts, filename))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	want := "Title: Ünïcode Title\n" +
		"Video ID: vid1\n" +
		"Upload Date: 20240101\n" +
		"Transcript Source: youtube_api\n" +
		"\n" + strings.Repeat("=", 50) + "\n\n" +
		"[00:00] héllo wörld"
	if content != want {
		t.Errorf("transcript file content:\n%q\nwant:\n%q", content, want)
	}
}

func TestWriteTranscriptOverwritesSameFilename(t *testing.T) {
	writer := NewWriter(t.TempDir())
	dirs, err := writer.EnsureDirs("Chan")
	if err != nil {
		t.Fatal(err)
	}

	// Two titles that sanitize to the same string share a filename; the
	// later write wins.
	first := media.VideoEntry{ID: "vid1", Title: "same?", UploadDate: "20240101"}
	second := media.VideoEntry{ID: "vid1", Title: "same*", UploadDate: "20240101"}

	name1, err := writer.WriteTranscript(dirs, first, "first text", "youtube_api")
	if err != nil {
		t.Fatal(err)
	}
	name2, err := writer.WriteTranscript(dirs, second, "second text", "youtube_api")
	if err != nil {
		t.Fatal(err)
	}
	if name1 != name2 {
		t.Fatalf("expected identical filenames, got %q and %q", name1, name2)
	}

	entries, err := os.ReadDir(dirs.Transcripts)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single file, got %d", len(entries))
	}
	data, _ := os.ReadFile(filepath.Join(dirs.Transcripts, name2))
	if !strings.HasSuffix(string(data), "second text") {
		t.Errorf("later write did not win: %q", data)
	}
}

func TestWriteMetadata(t *testing.T) {
	writer := NewWriter(t.TempDir())
	dirs, err := writer.EnsureDirs("Chan")
	if err != nil {
		t.Fatal(err)
	}

	metadata := RunMetadata{
		ChannelURL:   "https://www.youtube.com/@chan?x=1&y=2",
		ChannelName:  "Chañnel",
		DownloadDate: "2026-08-30T12:00:00Z",
		Videos: []VideoRecord{
			{VideoID: "vid1", Title: "Tïtle", UploadDate: "20240101", TranscriptSource: "youtube_api", TranscriptFile: "f.txt"},
		},
	}

	path, err := writer.WriteMetadata(dirs, metadata)
	if err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}
	if path != dirs.MetadataPath() {
		t.Errorf("path = %q, want %q", path, dirs.MetadataPath())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "\n  \"channel_url\"") {
		t.Errorf("metadata not indented: %q", content)
	}
	if !strings.Contains(content, "Chañnel") || !strings.Contains(content, "Tïtle") {
		t.Errorf("non-ASCII characters escaped: %q", content)
	}
	if strings.Contains(content, `&`) {
		t.Errorf("HTML-escaped ampersand in output: %q", content)
	}

	var parsed RunMetadata
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(parsed.Videos) != 1 || parsed.Videos[0].VideoID != "vid1" {
		t.Errorf("round trip videos = %+v", parsed.Videos)
	}
}

func TestWriteMetadataEmptyVideosIsArray(t *testing.T) {
	writer := NewWriter(t.TempDir())
	dirs, err := writer.EnsureDirs("Chan")
	if err != nil {
		t.Fatal(err)
	}

	path, err := writer.WriteMetadata(dirs, RunMetadata{ChannelName: "Chan"})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"videos": []`) {
		t.Errorf("empty videos should serialize as [], got %q", data)
	}
}

func TestWriteMetadataOverwrites(t *testing.T) {
	writer := NewWriter(t.TempDir())
	dirs, err := writer.EnsureDirs("Chan")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := writer.WriteMetadata(dirs, RunMetadata{ChannelName: "old"}); err != nil {
		t.Fatal(err)
	}
	if _, err := writer.WriteMetadata(dirs, RunMetadata{ChannelName: "new"}); err != nil {
		t.Fatal(err)
	}

	parsed, err := ReadMetadata(dirs.MetadataPath())
	if err != nil {
		t.Fatal(err)
	}
	if parsed.ChannelName != "new" {
		t.Errorf("metadata not overwritten: %q", parsed.ChannelName)
	}
}
