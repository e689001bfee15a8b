package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// LocalConfigFile is looked up in the working directory first.
	LocalConfigFile  = "labsite.yml"
	GlobalConfigDir  = "labsite"
	GlobalConfigFile = "config.yml"
)

// configHome is $XDG_CONFIG_HOME, or ~/.config when unset.
func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}

// GlobalConfigPath returns ~/.config/labsite/config.yml (XDG aware), or ""
// when no home directory can be found.
func GlobalConfigPath() string {
	base := configHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, GlobalConfigDir, GlobalConfigFile)
}

// DefaultPath picks labsite.yml in dir when present, else the global file.
func DefaultPath(dir string) string {
	local := filepath.Join(dir, LocalConfigFile)
	if info, err := os.Stat(local); err == nil && info.Mode().IsRegular() {
		return local
	}
	return GlobalConfigPath()
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
