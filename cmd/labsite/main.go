// Package main provides the labsite CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/chain"
	"github.com/matsen/labsite/internal/config"
	"github.com/matsen/labsite/internal/logging"
	"github.com/matsen/labsite/internal/provider"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	configPath  string
	logLevel    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (bad flags, missing args) are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "labsite",
	Short: "Lab website publications and interactive sections",
	Long: `labsite fetches a researcher's publications and serves the lab website's
interactive sections.

Publications are looked up by ORCID iD in the ORCID registry first, then
Crossref, then OpenAlex. The first source with any works is used.

All commands output JSON by default. Use --human for readable output.

Environment Variables:
  LABSITE_*     Override any config key (LABSITE_ORCID_ID, LABSITE_SERVER_PORT, ...)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for LABSITE_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./labsite.yml or ~/.config/labsite/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides log_level)")
	rootCmd.Version = Version
}

// resolveConfigPath returns --config or the default lookup path.
func resolveConfigPath() string {
	if configPath != "" {
		return config.ExpandPath(configPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return config.GlobalConfigPath()
	}
	return config.DefaultPath(cwd)
}

// mustLoadConfig loads and validates configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "invalid config: %v", err)
	}
	return cfg
}

func newLogger(cfg *config.Config) *logrus.Logger {
	return logging.New(cfg.LogLevel)
}

// newChain builds the ORCID -> Crossref -> OpenAlex fallback chain from config.
func newChain(cfg *config.Config, logger logrus.FieldLogger) *chain.Chain {
	// Validate has already checked the timeout
	timeout, _ := cfg.StageTimeout()

	client := provider.NewClient(
		provider.WithRateLimit(cfg.Providers.RateLimit),
		provider.WithUserAgent("labsite/"+Version, cfg.Mailto),
		provider.WithLogger(logger),
	)
	return chain.New(
		provider.Default(client, cfg.Endpoints()),
		chain.WithStageTimeout(timeout),
		chain.WithLogger(logger),
	)
}
