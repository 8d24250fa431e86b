package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tubescribe/internal/acquire"
	"tubescribe/internal/config"
	"tubescribe/internal/ledger"
	"tubescribe/internal/logging"
	"tubescribe/internal/media"
	"tubescribe/internal/notifications"
	"tubescribe/internal/output"
	"tubescribe/internal/resolver"
)

// ErrInterrupted reports a run cut short by cancellation. Transcripts written
// before the interrupt remain on disk; metadata is not written.
var ErrInterrupted = errors.New("run interrupted")

// State identifies the pipeline phase for logging and progress display.
type State string

const (
	StateStart              State = "start"
	StateResolvingChannel   State = "resolving-channel"
	StateListingVideos      State = "listing-videos"
	StateProcessingVideos   State = "processing-videos"
	StatePersistingMetadata State = "persisting-metadata"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Acquirer fetches one transcript per video.
type Acquirer interface {
	Acquire(ctx context.Context, video media.VideoEntry) acquire.Result
}

// ProgressFunc receives one call per processed video.
type ProgressFunc func(current, total int, video media.VideoEntry, source acquire.Source, skipped bool)

// Report summarizes a finished (or interrupted) run.
type Report struct {
	ChannelID     string
	ChannelName   string
	Total         int
	Succeeded     int
	Failed        int
	Skipped       int
	Duration      time.Duration
	TranscriptDir string
	MetadataPath  string
	Videos        []output.VideoRecord
}

// Deps carries the capabilities a pipeline run needs. Resolver, Lister,
// Acquirer, and Writer are required; the rest are optional.
type Deps struct {
	Resolver *resolver.Resolver
	Lister   media.Lister
	Acquirer Acquirer
	Writer   *output.Writer
	Ledger   *ledger.Store
	Notifier notifications.Service
	Logger   *slog.Logger
	Progress ProgressFunc
	Now      func() time.Time
	// Resume skips videos the ledger already records, provided their
	// transcript file is still on disk. Without it the ledger only records.
	Resume bool
}

// Pipeline runs channel downloads.
type Pipeline struct {
	cfg      *config.Config
	resolver *resolver.Resolver
	lister   media.Lister
	acquirer Acquirer
	writer   *output.Writer
	store    *ledger.Store
	notifier notifications.Service
	logger   *slog.Logger
	progress ProgressFunc
	now      func() time.Time
	resume   bool
}

// New constructs a pipeline from its dependencies.
func New(cfg *config.Config, deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	progress := deps.Progress
	if progress == nil {
		progress = func(int, int, media.VideoEntry, acquire.Source, bool) {}
	}
	return &Pipeline{
		cfg:      cfg,
		resolver: deps.Resolver,
		lister:   deps.Lister,
		acquirer: deps.Acquirer,
		writer:   deps.Writer,
		store:    deps.Ledger,
		notifier: notifier,
		logger:   logging.WithComponent(logger, "pipeline"),
		progress: progress,
		now:      now,
		resume:   deps.Resume,
	}
}

// Run downloads every available transcript for the channel behind rawURL.
// The returned report is non-nil whenever video processing started, including
// interrupted runs.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*Report, error) {
	start := p.now()
	p.logState(StateStart, logging.String("url", rawURL))

	p.logState(StateResolvingChannel)
	ref, err := p.resolver.Resolve(ctx, rawURL)
	if err != nil {
		return p.fail(ctx, fmt.Errorf("resolve channel: %w", err), "channel resolution")
	}

	// The lister enumerates the user's URL as given: a handle is not a
	// channel id, so canonical resolution is left to the lister's own
	// channel probe. ref.ID only feeds the log line.
	p.logState(StateListingVideos, logging.String(logging.FieldChannel, ref.ID))
	listing, err := p.lister.ListChannelVideos(ctx, ref.RawURL, p.cfg.Listing.VideoLimit)
	if err != nil {
		return p.fail(ctx, fmt.Errorf("list channel videos: %w", err), "channel listing")
	}
	p.logger.Info("channel enumerated",
		logging.String(logging.FieldChannel, listing.ChannelID),
		logging.String("channel_name", listing.ChannelName),
		logging.Int("videos", len(listing.Videos)))

	dirs, err := p.writer.EnsureDirs(listing.ChannelName)
	if err != nil {
		return p.fail(ctx, err, "output directories")
	}

	report := &Report{
		ChannelID:     listing.ChannelID,
		ChannelName:   listing.ChannelName,
		Total:         len(listing.Videos),
		TranscriptDir: dirs.Transcripts,
	}

	var runID string
	var completed map[string]output.VideoRecord
	if p.store != nil {
		runID, err = p.store.BeginRun(ctx, listing.ChannelID, rawURL, listing.ChannelName)
		if err != nil {
			p.logger.Warn("ledger unavailable, continuing without it", logging.Error(err))
		} else if p.resume {
			completed, err = p.store.CompletedVideos(ctx, listing.ChannelID)
			if err != nil {
				p.logger.Warn("ledger read failed, reprocessing all videos", logging.Error(err))
				completed = nil
			}
		}
	}

	p.notify(ctx, func(svc notifications.Service) error {
		return svc.NotifyRunStarted(ctx, listing.ChannelName, report.Total)
	})

	p.logState(StateProcessingVideos)
	for i, video := range listing.Videos {
		if err := ctx.Err(); err != nil {
			report.Duration = p.now().Sub(start)
			p.logger.Info("run interrupted",
				logging.Int("processed", i),
				logging.Int("total", report.Total))
			return report, ErrInterrupted
		}

		if rec, ok := completed[video.ID]; ok && fileExists(filepath.Join(dirs.Transcripts, rec.TranscriptFile)) {
			report.Skipped++
			report.Videos = append(report.Videos, rec)
			p.logger.Info("transcript already on disk, skipping",
				logging.String(logging.FieldVideoID, video.ID))
			p.progress(i+1, report.Total, video, acquire.SourceNone, true)
			continue
		}

		result := p.acquirer.Acquire(ctx, video)
		if !result.Available() && ctx.Err() != nil {
			// Cancelled mid-acquisition: an interrupt, not a caption failure.
			report.Duration = p.now().Sub(start)
			p.logger.Info("run interrupted",
				logging.Int("processed", i),
				logging.Int("total", report.Total))
			return report, ErrInterrupted
		}
		if !result.Available() {
			report.Failed++
			p.logger.Error("no transcript available",
				logging.String(logging.FieldVideoID, video.ID),
				logging.String("title", video.Title))
			p.progress(i+1, report.Total, video, acquire.SourceNone, false)
			continue
		}

		filename, err := p.writer.WriteTranscript(dirs, video, result.Text, result.Source.String())
		if err != nil {
			report.Failed++
			p.logger.Error("persist transcript", logging.String(logging.FieldVideoID, video.ID), logging.Error(err))
			p.progress(i+1, report.Total, video, acquire.SourceNone, false)
			continue
		}

		rec := output.VideoRecord{
			VideoID:          video.ID,
			Title:            video.Title,
			UploadDate:       video.UploadDate,
			TranscriptSource: result.Source.String(),
			TranscriptFile:   filename,
		}
		report.Videos = append(report.Videos, rec)
		report.Succeeded++

		if p.store != nil && runID != "" {
			if err := p.store.RecordTranscript(ctx, runID, listing.ChannelID, rec); err != nil {
				p.logger.Warn("ledger write failed", logging.String(logging.FieldVideoID, video.ID), logging.Error(err))
			}
		}

		p.logger.Info("transcript saved",
			logging.String(logging.FieldVideoID, video.ID),
			logging.String("source", result.Source.String()),
			logging.String("file", filename))
		p.progress(i+1, report.Total, video, result.Source, false)
	}

	p.logState(StatePersistingMetadata)
	metadata := output.RunMetadata{
		ChannelURL:   rawURL,
		ChannelName:  listing.ChannelName,
		DownloadDate: p.now().Format(time.RFC3339),
		Videos:       report.Videos,
	}
	metadataPath, err := p.writer.WriteMetadata(dirs, metadata)
	if err != nil {
		return p.fail(ctx, err, "metadata persistence")
	}
	report.MetadataPath = metadataPath
	report.Duration = p.now().Sub(start)

	if p.store != nil && runID != "" {
		if err := p.store.FinishRun(ctx, runID, report.Total, report.Succeeded, report.Failed); err != nil {
			p.logger.Warn("ledger finish failed", logging.Error(err))
		}
	}

	p.notify(ctx, func(svc notifications.Service) error {
		return svc.NotifyRunCompleted(ctx, listing.ChannelName, report.Succeeded, report.Failed, report.Duration)
	})

	p.logState(StateDone,
		logging.Int("succeeded", report.Succeeded),
		logging.Int("failed", report.Failed),
		logging.Int("skipped", report.Skipped))
	return report, nil
}

func (p *Pipeline) fail(ctx context.Context, err error, label string) (*Report, error) {
	p.logState(StateFailed, logging.Error(err))
	p.notify(ctx, func(svc notifications.Service) error {
		return svc.NotifyRunFailed(ctx, err, label)
	})
	return nil, err
}

func (p *Pipeline) notify(ctx context.Context, send func(notifications.Service) error) {
	if p.notifier == nil {
		return
	}
	if err := send(p.notifier); err != nil {
		p.logger.Warn("notification failed", logging.Error(err))
	}
}

func (p *Pipeline) logState(state State, attrs ...logging.Attr) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, logging.String(logging.FieldState, string(state)))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	p.logger.Info("state", args...)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
