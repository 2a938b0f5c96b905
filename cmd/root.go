package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/likee/client"
	"github.com/s0up4200/likee/config"
	"github.com/s0up4200/likee/filter"
	"github.com/s0up4200/likee/instrumentation"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	likeeClient *client.Client
	presets     *filter.Presets

	// Global flags
	logLevel     string
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "likee",
	Short: "Browse Likee videos, creators, hashtags and comments",
	Long: `likee is a command line client for the public Likee video API.

It lists trending videos and hashtags, looks up creators and their uploads,
and pages through video comments. Results can be narrowed down with expr
filter expressions and printed as a table or as JSON.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./likee.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json")
}

// initializeApp loads configuration and creates the Likee client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line flags win over the config file
	if logLevel != "" {
		cfg.Logging.Level = strings.ToLower(logLevel)
	}
	if outputFormat != "" {
		cfg.Output.Format = strings.ToLower(outputFormat)
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger = setupLogger(cfg.Logging)
	presets = filter.NewPresets(cfg.Filter.Presets)

	likeeClient, err = client.New(cfg.Likee,
		client.WithLogger(logger),
		client.WithLocale(cfg.Defaults.Country, cfg.Defaults.Language),
	)
	if err != nil {
		return fmt.Errorf("failed to create Likee client: %w", err)
	}

	if logger.GetLevel() <= zerolog.DebugLevel {
		likeeClient.Bus().SubscribeNamed("log", instrumentation.LogListener(logger))
	}

	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if likeeClient != nil {
		likeeClient.Close()
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
