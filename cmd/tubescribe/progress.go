package main

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"

	"tubescribe/internal/acquire"
	"tubescribe/internal/media"
)

// progressReporter renders a live tracker while videos are processed. When
// stdout is not a terminal it stays silent; the structured log already
// carries per-video lines.
type progressReporter struct {
	writer  progress.Writer
	mu      sync.Mutex
	tracker *progress.Tracker
	stopped bool
}

func newProgressReporter(out io.Writer) *progressReporter {
	if !writerIsTerminal(out) {
		return &progressReporter{}
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetUpdateFrequency(250 * time.Millisecond)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Speed = false
	go pw.Render()

	return &progressReporter{writer: pw}
}

func (r *progressReporter) observe(current, total int, _ media.VideoEntry, _ acquire.Source, _ bool) {
	if r.writer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tracker == nil {
		r.tracker = &progress.Tracker{Message: "Processing videos", Total: int64(total)}
		r.writer.AppendTracker(r.tracker)
	}
	r.tracker.SetValue(int64(current))
	if current >= total {
		r.tracker.MarkAsDone()
	}
}

func (r *progressReporter) stop() {
	if r.writer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	if r.tracker != nil && !r.tracker.IsDone() {
		r.tracker.MarkAsDone()
	}
	r.writer.Stop()
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(file)
}
