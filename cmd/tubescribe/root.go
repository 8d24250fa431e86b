package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tubescribe/internal/acquire"
	"tubescribe/internal/captions"
	"tubescribe/internal/config"
	"tubescribe/internal/deps"
	"tubescribe/internal/ledger"
	"tubescribe/internal/logging"
	"tubescribe/internal/media/ytdlp"
	"tubescribe/internal/notifications"
	"tubescribe/internal/output"
	"tubescribe/internal/pipeline"
	"tubescribe/internal/resolver"
	"tubescribe/internal/transcribe"
)

type rootFlags struct {
	channelURL string
	outputDir  string
	configPath string
	limit      int
	debug      bool
	resume     bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "tubescribe [channel-url]",
		Short:         "Download every available transcript for a YouTube channel",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.channelURL == "" && len(args) > 0 {
				flags.channelURL = args[0]
			}
			return runDownload(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flags.channelURL, "channel-url", "", "Channel URL to download transcripts for")
	rootCmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Output directory for the transcript archive")
	rootCmd.Flags().IntVar(&flags.limit, "limit", 0, "Maximum number of videos to process (0 = unlimited)")
	rootCmd.Flags().BoolVar(&flags.resume, "resume", false, "Skip videos whose transcripts are already on disk")

	rootCmd.AddCommand(newDepsCommand(flags))
	rootCmd.AddCommand(newConcatCommand())
	rootCmd.AddCommand(newSnapshotCommand())
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newNotifyCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func loadConfig(flags *rootFlags, cmd *cobra.Command) (*config.Config, error) {
	cfg, _, _, err := config.Load(strings.TrimSpace(flags.configPath))
	if err != nil {
		return nil, err
	}
	if cmd != nil {
		if cmd.Flags().Changed("output") {
			cfg.Paths.OutputDir = flags.outputDir
		}
		if cmd.Flags().Changed("limit") {
			cfg.Listing.VideoLimit = flags.limit
		}
	}
	if flags.debug {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func runDownload(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags, cmd)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	channelURL := strings.TrimSpace(flags.channelURL)
	if channelURL == "" {
		channelURL = promptChannelURL(cmd)
	}
	if channelURL == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No channel URL provided. Run `tubescribe --channel-url <url>` or see --help.")
		return errors.New("channel URL required")
	}

	if missing := deps.MissingRequired(deps.CheckBinaries(deps.Requirements(cfg))); len(missing) > 0 {
		return fmt.Errorf("missing required dependencies: %v (run `tubescribe deps` for details)", missing)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	yt := ytdlp.NewClient(
		ytdlp.WithBinary(cfg.YtDlp.Binary),
		ytdlp.WithTimeout(time.Duration(cfg.YtDlp.RequestTimeout)*time.Second),
	)
	caps := captions.NewClient(
		captions.WithLanguages(cfg.Captions.Languages),
		captions.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Captions.RequestTimeout) * time.Second}),
	)
	transcriber := transcribe.NewFromConfig(cfg)
	acquirer := acquire.NewService(caps, yt, transcriber, cfg.Paths.TempDir, logger)
	writer := output.NewWriter(cfg.Paths.OutputDir)

	var store *ledger.Store
	if cfg.Ledger.Enabled {
		store, err = ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return fmt.Errorf("open run ledger: %w", err)
		}
		defer store.Close()
	} else if flags.resume {
		logger.Warn("--resume requested but the ledger is disabled; processing all videos")
	}

	reporter := newProgressReporter(cmd.OutOrStdout())
	defer reporter.stop()

	p := pipeline.New(cfg, pipeline.Deps{
		Resolver: resolver.New(yt),
		Lister:   yt,
		Acquirer: acquirer,
		Writer:   writer,
		Ledger:   store,
		Notifier: notifications.NewService(cfg),
		Logger:   logger,
		Progress: reporter.observe,
		Resume:   flags.resume,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := p.Run(ctx, channelURL)
	reporter.stop()
	if errors.Is(err, pipeline.ErrInterrupted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Interrupted. Transcripts saved so far remain on disk.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report))
	return nil
}

// promptChannelURL asks for a URL interactively when stdin is a terminal.
// Non-interactive invocations get an empty string back and fail with usage.
func promptChannelURL(cmd *cobra.Command) string {
	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok || !isTerminal(stdin) {
		return ""
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Enter a YouTube channel URL. Accepted shapes:")
	fmt.Fprintln(out, "  https://www.youtube.com/channel/<id>")
	fmt.Fprintln(out, "  https://www.youtube.com/@<handle>")
	fmt.Fprintln(out, "  https://www.youtube.com/c/<name>")
	fmt.Fprintln(out, "  https://www.youtube.com/user/<name>")
	fmt.Fprint(out, "> ")

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
