package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matsen/labsite/internal/provider"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Providers.ORCIDURL != provider.ORCIDBaseURL || cfg.Server.Port != 8080 || cfg.LogLevel != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labsite.yml")
	writeFile(t, path, `
orcid_id: 0000-0003-0796-6265
providers:
  timeout: 3s
  crossref_url: http://crossref.local
server:
  port: 9000
`)
	t.Setenv("LABSITE_SERVER_PORT", "9100")
	t.Setenv("LABSITE_LOG_LEVEL", "debug")
	t.Setenv("LABSITE_CONTACT_ENDPOINT", "http://forms.local/submit")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ORCIDID != "0000-0003-0796-6265" {
		t.Errorf("ORCIDID = %q", cfg.ORCIDID)
	}
	if cfg.Providers.CrossrefURL != "http://crossref.local" {
		t.Errorf("CrossrefURL = %q", cfg.Providers.CrossrefURL)
	}
	if cfg.Providers.OpenAlexURL != provider.OpenAlexBaseURL {
		t.Errorf("OpenAlexURL lost its default: %q", cfg.Providers.OpenAlexURL)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Contact.Endpoint != "http://forms.local/submit" {
		t.Errorf("Contact.Endpoint = %q", cfg.Contact.Endpoint)
	}
	if d, err := cfg.StageTimeout(); err != nil || d != 3*time.Second {
		t.Errorf("StageTimeout() = %v, %v", d, err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labsite.yml")
	writeFile(t, path, "server: [")
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"LABSITE_ORCID_ID":                 "orcid_id",
		"LABSITE_SERVER_PORT":              "server.port",
		"LABSITE_SERVER_ALLOW_ALL_ORIGINS": "server.allow_all_origins",
		"LABSITE_PROVIDERS_RATE_LIMIT":     "providers.rate_limit",
		"LABSITE_THEME_DB":                 "theme_db",
	}
	for in, want := range tests {
		if got := EnvKey(in); got != want {
			t.Errorf("EnvKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"valid orcid", func(c *Config) { c.ORCIDID = "0000-0002-1825-0097" }, ""},
		{"bad orcid", func(c *Config) { c.ORCIDID = "not-an-orcid" }, "orcid_id"},
		{"bad timeout", func(c *Config) { c.Providers.Timeout = "soon" }, "providers.timeout"},
		{"zero timeout", func(c *Config) { c.Providers.Timeout = "0s" }, "positive"},
		{"bad cache ttl", func(c *Config) { c.Providers.CacheTTL = "forever" }, "cache_ttl"},
		{"cache disabled", func(c *Config) { c.Providers.CacheTTL = "0" }, ""},
		{"negative rate", func(c *Config) { c.Providers.RateLimit = -1 }, "rate_limit"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"missing url", func(c *Config) { c.Providers.CrossrefURL = "" }, "URLs"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labsite.yml")
	cfg := DefaultConfig()
	cfg.ORCIDID = "0000-0003-0796-6265"
	cfg.Server.AllowAllOrigins = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ORCIDID != cfg.ORCIDID || !loaded.Server.AllowAllOrigins || loaded.Providers.Timeout != "10s" {
		t.Errorf("round trip = %+v", loaded)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/labsite/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir := t.TempDir()
	if got := DefaultPath(dir); got != "/custom/config/labsite/config.yml" {
		t.Errorf("DefaultPath() without local file = %q", got)
	}
	local := filepath.Join(dir, LocalConfigFile)
	writeFile(t, local, "log_level: info\n")
	if got := DefaultPath(dir); got != local {
		t.Errorf("DefaultPath() = %q, want %q", got, local)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got := ExpandPath("~/x.db"); got != filepath.Join(home, "x.db") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("ExpandPath() changed an absolute path: %q", got)
	}
}
