package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLedger(); err != nil {
		return err
	}
	c.normalizeCaptions()
	c.normalizeYtDlp()
	c.normalizeWhisper()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = defaultTempDir
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLedger() error {
	if strings.TrimSpace(c.Ledger.Path) == "" {
		c.Ledger.Path = defaultLedgerPath
	}
	var err error
	if c.Ledger.Path, err = expandPath(c.Ledger.Path); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCaptions() {
	languages := make([]string, 0, len(c.Captions.Languages))
	for _, lang := range c.Captions.Languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			languages = append(languages, lang)
		}
	}
	if len(languages) == 0 {
		languages = []string{defaultCaptionLanguage}
	}
	c.Captions.Languages = languages
	if c.Captions.RequestTimeout <= 0 {
		c.Captions.RequestTimeout = defaultCaptionTimeout
	}
}

func (c *Config) normalizeYtDlp() {
	c.YtDlp.Binary = strings.TrimSpace(c.YtDlp.Binary)
	if c.YtDlp.Binary == "" {
		c.YtDlp.Binary = defaultYtDlpBinary
	}
	if c.YtDlp.RequestTimeout <= 0 {
		c.YtDlp.RequestTimeout = defaultYtDlpTimeout
	}
}

func (c *Config) normalizeWhisper() {
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if strings.TrimSpace(c.Whisper.Model) == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	if c.Whisper.Timeout <= 0 {
		c.Whisper.Timeout = defaultWhisperTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}
