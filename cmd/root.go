package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/atmo/config"
	"github.com/s0up4200/atmo/filter"
)

// skipConfig marks commands that run without a configuration.
const skipConfig = "skip-config"

var (
	cfgFile    string
	jsonOutput bool

	cfg     *config.Config
	logger  = zerolog.Nop()
	filters *filter.Manager
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "atmo",
	Short: "A command line client for Netatmo weather stations and thermostats",
	Long: `atmo talks to the Netatmo Connect API. It reads weather station and
Healthy Home Coach readings, measurement history, home topology and room
status, and changes room setpoints.

Credentials are read from the config file or the NETATMO_CLIENT_ID,
NETATMO_CLIENT_SECRET, NETATMO_USERNAME and NETATMO_PASSWORD environment
variables.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw API responses as JSON")
}

// initializeApp loads the configuration, the logger and the filter presets
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfig] == "true" {
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		return nil
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Strs("presets", filters.ListFilters()).
		Str("token_store", cfg.Token.Store).
		Msg("Configuration loaded")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
