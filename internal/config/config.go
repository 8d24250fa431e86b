package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	TempDir   string `toml:"temp_dir"`
}

// Listing contains channel enumeration settings.
type Listing struct {
	// VideoLimit caps how many videos are enumerated per channel.
	// Zero means unlimited.
	VideoLimit int `toml:"video_limit"`
}

// Captions contains settings for the platform caption source.
type Captions struct {
	Languages      []string `toml:"languages"`
	RequestTimeout int      `toml:"request_timeout"`
}

// YtDlp contains settings for the yt-dlp wrapper.
type YtDlp struct {
	Binary         string `toml:"binary"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Whisper contains settings for the audio transcription fallback.
// The fallback is disabled until a binary is configured.
type Whisper struct {
	Binary  string `toml:"binary"`
	Model   string `toml:"model"`
	Timeout int    `toml:"timeout"`
}

// Ledger contains settings for the sqlite run ledger.
type Ledger struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tubescribe.
//
// Sections by subsystem:
//   - Paths: transcript output root, log and temp directories
//   - Listing: channel enumeration bounds
//   - Captions: caption languages and HTTP timeout
//   - YtDlp: external yt-dlp binary settings
//   - Whisper: transcription fallback (off unless a binary is set)
//   - Ledger: sqlite run ledger for --resume
//   - Notifications: ntfy push settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Listing       Listing       `toml:"listing"`
	Captions      Captions      `toml:"captions"`
	YtDlp         YtDlp         `toml:"ytdlp"`
	Whisper       Whisper       `toml:"whisper"`
	Ledger        Ledger        `toml:"ledger"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tubescribe/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. The
// returned config has all path fields expanded to absolute paths. When no file
// exists the defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tubescribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates directories the pipeline needs before running.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.TempDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Ledger.Enabled && strings.TrimSpace(c.Ledger.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Ledger.Path), 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}
	return nil
}

// FallbackConfigured reports whether the whisper fallback can produce text.
func (c *Config) FallbackConfigured() bool {
	return strings.TrimSpace(c.Whisper.Binary) != ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
