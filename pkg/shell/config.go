package shell

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// Config holds the optional, purely cosmetic settings a user may place
// in $XDG_CONFIG_HOME/posh/config.toml (or ~/.config/posh/config.toml).
// None of these fields change parsing or execution semantics — only
// the REPL's outer surface (§§2.3 of the expanded design).
type Config struct {
	Prompt       string `toml:"prompt"`
	HistoryFile  string `toml:"history_file"`
	HistoryLimit int    `toml:"history_limit"`
	NoColor      bool   `toml:"no_color"`
}

// DefaultConfig returns the settings used when no config file exists
// or a value is left unset.
func DefaultConfig() Config {
	return Config{
		Prompt:       "$ ",
		HistoryFile:  "~/.posh_history",
		HistoryLimit: 1000,
		NoColor:      false,
	}
}

// configDir returns the shell's config directory, preferring
// $XDG_CONFIG_HOME over ~/.config, or "" if neither can be determined.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "posh")
	}

	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}

	return filepath.Join(home, ".config", "posh")
}

// configPath returns the candidate location for config.toml within
// configDir.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// LoadConfig reads and merges config.toml over DefaultConfig. A
// missing file is not an error — it simply yields the defaults.
// A malformed file is logged and defaults are returned, since a typo
// in an optional cosmetic file must never keep the shell from
// starting.
func LoadConfig(logger *zap.SugaredLogger) Config {
	cfg := DefaultConfig()

	path := configPath()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnw("reading shell config", "path", path, "error", err)
		}
		return cfg
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		logger.Warnw("parsing shell config, using defaults", "path", path, "error", err)
		return DefaultConfig()
	}

	return cfg
}
