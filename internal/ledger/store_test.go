package ledger_test

import (
	"context"
	"path/filepath"
	"testing"

	"tubescribe/internal/ledger"
	"tubescribe/internal/output"
)

func openStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestStoreRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	runID, err := store.BeginRun(ctx, "UCabc", "https://www.youtube.com/@someone", "Someone")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if runID == "" {
		t.Fatal("BeginRun returned empty run id")
	}

	if err := store.FinishRun(ctx, runID, 3, 2, 1); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	if err := store.FinishRun(ctx, "no-such-run", 0, 0, 0); err == nil {
		t.Fatal("FinishRun accepted unknown run id")
	}
}

func TestStoreRecordAndListTranscripts(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	runID, err := store.BeginRun(ctx, "UCabc", "https://www.youtube.com/@someone", "Someone")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	records := []output.VideoRecord{
		{VideoID: "vid1", Title: "First", UploadDate: "20240101", TranscriptSource: "youtube_api", TranscriptFile: "20240101_First_vid1.txt"},
		{VideoID: "vid2", Title: "Second", UploadDate: "unknown", TranscriptSource: "whisper", TranscriptFile: "unknown_Second_vid2.txt"},
	}
	for _, rec := range records {
		if err := store.RecordTranscript(ctx, runID, "UCabc", rec); err != nil {
			t.Fatalf("RecordTranscript(%s): %v", rec.VideoID, err)
		}
	}

	completed, err := store.CompletedVideos(ctx, "UCabc")
	if err != nil {
		t.Fatalf("CompletedVideos: %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("expected 2 completed videos, got %d", len(completed))
	}
	got, ok := completed["vid1"]
	if !ok {
		t.Fatal("vid1 missing from completed set")
	}
	if got != records[0] {
		t.Fatalf("vid1 record mismatch: got %+v want %+v", got, records[0])
	}

	other, err := store.CompletedVideos(ctx, "UCother")
	if err != nil {
		t.Fatalf("CompletedVideos(other): %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty set for other channel, got %d", len(other))
	}
}

func TestStoreRecordTranscriptReplacesEarlierRow(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	runID, err := store.BeginRun(ctx, "UCabc", "https://www.youtube.com/@someone", "Someone")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	first := output.VideoRecord{VideoID: "vid1", Title: "First", UploadDate: "20240101", TranscriptSource: "youtube_api", TranscriptFile: "a.txt"}
	if err := store.RecordTranscript(ctx, runID, "UCabc", first); err != nil {
		t.Fatalf("RecordTranscript: %v", err)
	}

	updated := first
	updated.TranscriptSource = "whisper"
	updated.TranscriptFile = "b.txt"
	if err := store.RecordTranscript(ctx, runID, "UCabc", updated); err != nil {
		t.Fatalf("RecordTranscript(update): %v", err)
	}

	completed, err := store.CompletedVideos(ctx, "UCabc")
	if err != nil {
		t.Fatalf("CompletedVideos: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("expected 1 row after replace, got %d", len(completed))
	}
	if completed["vid1"] != updated {
		t.Fatalf("replace did not stick: got %+v", completed["vid1"])
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")
	ctx := context.Background()

	store, err := ledger.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	runID, err := store.BeginRun(ctx, "UCabc", "https://www.youtube.com/@someone", "Someone")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	rec := output.VideoRecord{VideoID: "vid1", Title: "First", UploadDate: "20240101", TranscriptSource: "youtube_api", TranscriptFile: "a.txt"}
	if err := store.RecordTranscript(ctx, runID, "UCabc", rec); err != nil {
		t.Fatalf("RecordTranscript: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := ledger.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	completed, err := reopened.CompletedVideos(ctx, "UCabc")
	if err != nil {
		t.Fatalf("CompletedVideos: %v", err)
	}
	if completed["vid1"] != rec {
		t.Fatalf("data lost across reopen: got %+v", completed["vid1"])
	}
}
