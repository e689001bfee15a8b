// Package config handles labsite configuration.
//
// Values come from built-in defaults, then a YAML file, then LABSITE_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/provider"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LABSITE_"

// Config is the labsite configuration, stored in labsite.yml.
type Config struct {
	ORCIDID     string         `yaml:"orcid_id" koanf:"orcid_id" json:"orcid_id"`
	Mailto      string         `yaml:"mailto,omitempty" koanf:"mailto" json:"mailto"`
	Providers   ProviderConfig `yaml:"providers" koanf:"providers" json:"providers"`
	Server      ServerConfig   `yaml:"server" koanf:"server" json:"server"`
	ThemeDB     string         `yaml:"theme_db,omitempty" koanf:"theme_db" json:"theme_db"`
	Contact     ContactConfig  `yaml:"contact" koanf:"contact" json:"contact"`
	ContentFile string         `yaml:"content_file,omitempty" koanf:"content_file" json:"content_file"`
	LogLevel    string         `yaml:"log_level" koanf:"log_level" json:"log_level"`
}

// ProviderConfig holds the bibliographic API settings.
type ProviderConfig struct {
	ORCIDURL    string  `yaml:"orcid_url" koanf:"orcid_url" json:"orcid_url"`
	CrossrefURL string  `yaml:"crossref_url" koanf:"crossref_url" json:"crossref_url"`
	OpenAlexURL string  `yaml:"openalex_url" koanf:"openalex_url" json:"openalex_url"`
	Timeout     string  `yaml:"timeout" koanf:"timeout" json:"timeout"`
	RateLimit   float64 `yaml:"rate_limit" koanf:"rate_limit" json:"rate_limit"` // requests per second, 0 for unlimited
	CacheTTL    string  `yaml:"cache_ttl" koanf:"cache_ttl" json:"cache_ttl"`    // server result cache, "0" disables (default)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port" json:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins" json:"allow_all_origins"`
}

// ContactConfig holds the contact form forwarding settings.
type ContactConfig struct {
	Endpoint string `yaml:"endpoint,omitempty" koanf:"endpoint" json:"endpoint"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Providers: ProviderConfig{
			ORCIDURL:    provider.ORCIDBaseURL,
			CrossrefURL: provider.CrossrefBaseURL,
			OpenAlexURL: provider.OpenAlexBaseURL,
			Timeout:     "10s",
			RateLimit:   5,
			CacheTTL:    "0",
		},
		Server:   ServerConfig{Port: 8080},
		LogLevel: "info",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// LABSITE_ORCID_ID -> orcid_id, LABSITE_SERVER_PORT -> server.port
	if err := k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// sections are the nested config groups addressable from the environment.
var sections = []string{"providers", "server", "contact"}

// EnvKey maps an environment variable name to a config key.
func EnvKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, s := range sections {
		if strings.HasPrefix(key, s+"_") {
			return s + "." + strings.TrimPrefix(key, s+"_")
		}
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// StageTimeout returns the parsed per-provider timeout.
func (c *Config) StageTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Providers.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid providers.timeout %q: %w", c.Providers.Timeout, err)
	}
	return d, nil
}

// CacheTTL returns how long the server keeps rendered results. Zero disables the cache.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Providers.CacheTTL == "" || c.Providers.CacheTTL == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Providers.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid providers.cache_ttl %q: %w", c.Providers.CacheTTL, err)
	}
	return d, nil
}

// Endpoints returns the provider base URLs.
func (c *Config) Endpoints() provider.Endpoints {
	return provider.Endpoints{
		ORCID:    c.Providers.ORCIDURL,
		Crossref: c.Providers.CrossrefURL,
		OpenAlex: c.Providers.OpenAlexURL,
	}
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks that the configuration contains valid values.
// An empty orcid_id is allowed; commands that need one check it themselves.
func (c *Config) Validate() error {
	if c.ORCIDID != "" && !orcid.IsValid(c.ORCIDID) {
		return fmt.Errorf("invalid orcid_id %q", c.ORCIDID)
	}

	if c.Providers.ORCIDURL == "" || c.Providers.CrossrefURL == "" || c.Providers.OpenAlexURL == "" {
		return fmt.Errorf("provider URLs are required")
	}

	d, err := c.StageTimeout()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("providers.timeout must be positive")
	}

	ttl, err := c.CacheTTL()
	if err != nil {
		return err
	}
	if ttl < 0 {
		return fmt.Errorf("providers.cache_ttl must be non-negative")
	}

	if c.Providers.RateLimit < 0 {
		return fmt.Errorf("providers.rate_limit must be non-negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	return nil
}
