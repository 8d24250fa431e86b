package config

const (
	defaultOutputDir       = "transcripts"
	defaultLogDir          = "~/.local/share/tubescribe/logs"
	defaultTempDir         = "~/.cache/tubescribe/audio"
	defaultLedgerPath      = "~/.local/share/tubescribe/ledger.db"
	defaultVideoLimit      = 50
	defaultCaptionTimeout  = 30
	defaultYtDlpBinary     = "yt-dlp"
	defaultYtDlpTimeout    = 300
	defaultWhisperModel    = "small"
	defaultWhisperTimeout  = 1800
	defaultNotifyTimeout   = 10
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultCaptionLanguage = "en"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			TempDir:   defaultTempDir,
		},
		Listing: Listing{
			VideoLimit: defaultVideoLimit,
		},
		Captions: Captions{
			Languages:      []string{defaultCaptionLanguage},
			RequestTimeout: defaultCaptionTimeout,
		},
		YtDlp: YtDlp{
			Binary:         defaultYtDlpBinary,
			RequestTimeout: defaultYtDlpTimeout,
		},
		Whisper: Whisper{
			Model:   defaultWhisperModel,
			Timeout: defaultWhisperTimeout,
		},
		Ledger: Ledger{
			Enabled: true,
			Path:    defaultLedgerPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
