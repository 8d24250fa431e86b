package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"tubescribe/internal/config"
)

// ErrUnavailable means no transcription backend can produce text.
var ErrUnavailable = errors.New("transcription unavailable")

// Transcriber turns a local audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Disabled is the placeholder backend used when no whisper binary is
// configured. It never produces text.
type Disabled struct{}

// Transcribe always reports ErrUnavailable.
func (Disabled) Transcribe(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// WhisperCLI wraps a whisper-compatible transcription binary.
type WhisperCLI struct {
	binary  string
	model   string
	timeout time.Duration
	runner  Runner
}

// Option configures the CLI wrapper.
type Option func(*WhisperCLI)

// WithRunner sets a custom command runner (for testing).
func WithRunner(runner Runner) Option {
	return func(w *WhisperCLI) {
		if runner != nil {
			w.runner = runner
		}
	}
}

// WithTimeout bounds each transcription run.
func WithTimeout(timeout time.Duration) Option {
	return func(w *WhisperCLI) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// NewWhisperCLI builds a wrapper around the given binary and model.
func NewWhisperCLI(binary, model string, opts ...Option) *WhisperCLI {
	w := &WhisperCLI{
		binary:  binary,
		model:   model,
		timeout: 30 * time.Minute,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.runner == nil {
		w.runner = execRunner
	}
	return w
}

// NewFromConfig returns the configured backend, or Disabled when the config
// names no binary.
func NewFromConfig(cfg *config.Config, opts ...Option) Transcriber {
	if cfg == nil || !cfg.FallbackConfigured() {
		return Disabled{}
	}
	opts = append([]Option{WithTimeout(time.Duration(cfg.Whisper.Timeout) * time.Second)}, opts...)
	return NewWhisperCLI(cfg.Whisper.Binary, cfg.Whisper.Model, opts...)
}

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe runs the whisper binary against audioPath, asking for plain-text
// output next to the audio file, and returns the text.
func (w *WhisperCLI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", fmt.Errorf("%w: audio path required", ErrUnavailable)
	}

	outputDir := filepath.Dir(audioPath)
	args := []string{
		audioPath,
		"--model", w.model,
		"--output_format", "txt",
		"--output_dir", outputDir,
	}

	runCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.runner(runCtx, w.binary, args...); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	textPath := filepath.Join(outputDir, stem+".txt")
	data, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("%w: read whisper output: %w", ErrUnavailable, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: whisper produced empty output", ErrUnavailable)
	}
	return text, nil
}

var _ Transcriber = (*WhisperCLI)(nil)
