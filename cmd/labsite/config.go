package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration (defaults, file and LABSITE_* overrides)",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [orcid]",
	Short: "Write a configuration file with defaults",
	Long: `Write a configuration file with default settings.

The file goes to --config if given, otherwise ./labsite.yml.

Examples:
  labsite config init 0000-0003-0796-6265
  labsite config init --config ~/.config/labsite/config.yml --force`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the JSON output of config show.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) {
	path := resolveConfigPath()
	cfg := mustLoadConfig()

	if humanOutput {
		outputHuman("config file:  %s\n", path)
		outputHuman("orcid_id:     %s\n", cfg.ORCIDID)
		outputHuman("mailto:       %s\n", cfg.Mailto)
		outputHuman("orcid_url:    %s\n", cfg.Providers.ORCIDURL)
		outputHuman("crossref_url: %s\n", cfg.Providers.CrossrefURL)
		outputHuman("openalex_url: %s\n", cfg.Providers.OpenAlexURL)
		outputHuman("timeout:      %s\n", cfg.Providers.Timeout)
		outputHuman("rate_limit:   %g/s\n", cfg.Providers.RateLimit)
		outputHuman("cache_ttl:    %s\n", cfg.Providers.CacheTTL)
		outputHuman("port:         %d\n", cfg.Server.Port)
		outputHuman("theme_db:     %s\n", cfg.ThemeDB)
		outputHuman("content_file: %s\n", cfg.ContentFile)
		outputHuman("contact:      %s\n", cfg.Contact.Endpoint)
		outputHuman("log_level:    %s\n", cfg.LogLevel)
		return
	}
	outputJSON(ConfigResponse{Path: path, Config: cfg})
}

func runConfigInit(cmd *cobra.Command, args []string) {
	path := config.LocalConfigFile
	if configPath != "" {
		path = config.ExpandPath(configPath)
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		exitWithError(ExitError, "%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if len(args) == 1 {
		cfg.ORCIDID = args[0]
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "invalid config: %v", err)
	}
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Wrote %s\n", path)
	} else {
		outputJSON(StatusResponse{Status: "created", Path: path})
	}
}
