// Package acquire obtains one transcript per video: platform captions first,
// then, when configured, audio download plus local transcription.
//
// Every primary failure class (no captions, private video, captcha,
// transport error) is treated uniformly as "unavailable" and logged as a
// warning before the fallback runs. The result is a tagged value carrying
// which path produced the text, so downstream consumers never need a
// side-channel to learn the source.
package acquire

import (
	"context"
	"log/slog"
	"os"

	"tubescribe/internal/captions"
	"tubescribe/internal/logging"
	"tubescribe/internal/media"
	"tubescribe/internal/transcribe"
)

// Source tags which path produced a transcript.
type Source int

const (
	// SourceNone means both paths failed.
	SourceNone Source = iota
	// SourcePrimary means the platform caption track.
	SourcePrimary
	// SourceFallback means locally generated from audio.
	SourceFallback
)

// String returns the wire value persisted in transcript files and metadata.
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "youtube_api"
	case SourceFallback:
		return "whisper"
	default:
		return "none"
	}
}

// Result is the outcome of acquiring one video's transcript. Text is empty
// exactly when Source is SourceNone.
type Result struct {
	VideoID string
	Text    string
	Source  Source
}

// Available reports whether any path produced text.
func (r Result) Available() bool {
	return r.Source != SourceNone
}

// CaptionSource fetches timed caption entries for a video id.
type CaptionSource interface {
	Fetch(ctx context.Context, videoID string) ([]captions.Entry, error)
}

// Service runs the primary-then-fallback acquisition for single videos.
type Service struct {
	captions    CaptionSource
	downloader  media.AudioDownloader
	transcriber transcribe.Transcriber
	tempRoot    string
	logger      *slog.Logger
}

// NewService wires an acquisition service. tempRoot hosts the short-lived
// per-video audio directories; empty means the system temp dir.
func NewService(captionSource CaptionSource, downloader media.AudioDownloader, transcriber transcribe.Transcriber, tempRoot string, logger *slog.Logger) *Service {
	if transcriber == nil {
		transcriber = transcribe.Disabled{}
	}
	return &Service{
		captions:    captionSource,
		downloader:  downloader,
		transcriber: transcriber,
		tempRoot:    tempRoot,
		logger:      logging.WithComponent(logger, "acquire"),
	}
}

// Acquire fetches a transcript for the video. It never fails the run: both
// paths exhausting yields a SourceNone result.
func (s *Service) Acquire(ctx context.Context, video media.VideoEntry) Result {
	result := Result{VideoID: video.ID}

	entries, err := s.captions.Fetch(ctx, video.ID)
	if err == nil {
		result.Text = captions.Format(entries)
		result.Source = SourcePrimary
		return result
	}
	s.logger.Warn("no platform captions, trying fallback",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String("title", video.Title),
		logging.Error(err),
	)
	if ctx.Err() != nil {
		return result
	}

	text, err := s.generate(ctx, video)
	if err != nil {
		s.logger.Warn("fallback transcription unavailable",
			logging.String(logging.FieldVideoID, video.ID),
			logging.Error(err),
		)
		return result
	}
	result.Text = text
	result.Source = SourceFallback
	return result
}

// generate downloads the audio track into a scratch directory and
// transcribes it. The directory is removed whether or not either step
// succeeds.
func (s *Service) generate(ctx context.Context, video media.VideoEntry) (string, error) {
	// Without a transcription backend the download would be thrown away;
	// skip it and surface the placeholder state directly.
	if _, disabled := s.transcriber.(transcribe.Disabled); disabled {
		return "", transcribe.ErrUnavailable
	}

	workDir, err := os.MkdirTemp(s.tempRoot, "audio-"+video.ID+"-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(workDir)

	audioPath, err := s.downloader.DownloadAudio(ctx, media.WatchURL(video.ID), workDir)
	if err != nil {
		return "", err
	}
	return s.transcriber.Transcribe(ctx, audioPath)
}
