// Package cmd implements the CLI commands for babelpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/babelpipe/config"
	"github.com/gaurav-prasanna/babelpipe/core"
	"github.com/gaurav-prasanna/babelpipe/core/archive"
	"github.com/gaurav-prasanna/babelpipe/core/fetch"
	"github.com/gaurav-prasanna/babelpipe/core/normalize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// diagnosticLength caps how much of an unexpected archive response is shown.
const diagnosticLength = 2000

// Persistent flag variables.
var (
	flagConfig  string
	flagVerbose bool
	flagBaseURL string
	flagTimeout string
)

// Set up by PersistentPreRunE for every subcommand.
var (
	cfg    *config.Config
	logger *zap.Logger
	client *archive.Client
)

var rootCmd = &cobra.Command{
	Use:   "babelpipe",
	Short: "babelpipe — read and search the Library of Babel",
	Long: `babelpipe fetches pages from a Library of Babel style archive by their
five-part coordinate and finds the pages that contain a given text.

Usage:
  babelpipe page <location> [flags]
  babelpipe search <text> [flags]
  babelpipe book <location> [flags]`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging and archive response dumps on errors")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base_url", "", "Archive base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "Per-request timeout, e.g. 30s (overrides config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		reportDocument(err)
		os.Exit(1)
	}
}

// setup loads configuration, then builds the logger and archive client.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagTimeout != "" {
		cfg.Timeout = flagTimeout
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	if flagChunkSize != 0 {
		cfg.ChunkSize = flagChunkSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}
	transport, err := fetch.New(cfg.BaseURL,
		fetch.WithTimeout(timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLogger(logger))
	if err != nil {
		return err
	}

	client = archive.New(transport,
		archive.WithLogger(logger),
		archive.WithChunkSize(cfg.ChunkSize),
		archive.WithHiddenField(cfg.IncludeHidden))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// reportDocument prints a readable digest of the archive response attached
// to err, when there is one and --verbose is set.
func reportDocument(err error) {
	doc, ok := core.Document(err)
	if !ok || !flagVerbose {
		return
	}
	digest, derr := normalize.New(diagnosticLength).Describe(doc)
	if derr != nil {
		fmt.Fprintf(os.Stderr, "could not describe archive response: %v\n", derr)
		return
	}
	fmt.Fprintf(os.Stderr, "\n--- archive response ---\n%s\n", digest)
}
