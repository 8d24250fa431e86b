package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tubescribe/internal/export"
)

func TestConcatTranscripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "20240102_Second_vid2.txt"), "second body\n")
	writeFile(t, filepath.Join(dir, "20240101_First_vid1.txt"), "first body\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "ignored\n")
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var out strings.Builder
	count, err := export.ConcatTranscripts(&out, dir)
	if err != nil {
		t.Fatalf("ConcatTranscripts: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 transcripts, got %d", count)
	}

	want := "Title: 20240101_First_vid1\nfirst body\n\n\n" +
		"Title: 20240102_Second_vid2\nsecond body\n\n\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestConcatTranscriptsToFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha\n")
	outPath := filepath.Join(t.TempDir(), "combined.txt")
	writeFile(t, outPath, "stale contents that must disappear")

	count, err := export.ConcatTranscriptsToFile(dir, outPath)
	if err != nil {
		t.Fatalf("ConcatTranscriptsToFile: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 transcript, got %d", count)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "Title: a\nalpha\n\n\n" {
		t.Fatalf("unexpected file contents: %q", string(data))
	}
}

func TestConcatTranscriptsMissingDir(t *testing.T) {
	var out strings.Builder
	if _, err := export.ConcatTranscripts(&out, filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
