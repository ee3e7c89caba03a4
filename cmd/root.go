package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdb/config"
	"github.com/s0up4200/tmdb/filter"
	"github.com/s0up4200/tmdb/tmdb"
	"github.com/s0up4200/tmdb/transport"
)

var (
	cfgFile  string
	language string
	debug    bool

	cfg     *config.Config
	logger  zerolog.Logger
	client  *tmdb.Client
	filters *filter.Manager

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tmdb",
	Short: "Browse The Movie Database from the command line",
	Long: `tmdb looks up movies, TV shows, people and companies on The Movie Database.
Fields are fetched lazily, so each command only makes the requests it needs.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion records build information shown by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml, ~/.tmdb or /etc/tmdb)")
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "", "response language, e.g. de-DE")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every request")

	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and builds the client
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if debug {
		cfg.Logging.Level = "debug"
	}
	if cmd.Flags().Changed("language") {
		cfg.TMDB.Language = language
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	api := transport.NewClient(cfg.TMDB.APIKey, logger,
		transport.WithBaseURL(cfg.TMDB.BaseURL),
		transport.WithTimeout(cfg.TMDB.Timeout),
		transport.WithLanguage(cfg.TMDB.Language),
	)
	client = tmdb.NewClient(api, logger)

	filters = filter.NewManager()
	if err := filters.RegisterPresets(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter presets: %w", err)
	}

	logger.Debug().
		Str("base_url", api.BaseURL()).
		Str("language", cfg.TMDB.Language).
		Strs("presets", filters.Presets()).
		Msg("Client initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
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

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format, colour only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tmdb %s (built %s)\n", version, buildTime)
	},
}
