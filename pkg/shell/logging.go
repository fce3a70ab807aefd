package shell

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// NewLogger builds the shell's diagnostic logger. Output never
// touches the user-facing stdout/stderr streams the REPL writes
// through — this is strictly for operator-facing diagnostics such as
// command timing (see Executor). Instead it goes to a log file
// alongside the shell's config, under the same XDG directory
// configPath resolves.
//
// SHELL_DEBUG=1 raises the level to debug and switches to the more
// verbose development encoder; otherwise the shell logs at info level
// using the production JSON encoder. If construction fails for any
// reason, NewLogger falls back to a no-op logger rather than aborting
// the shell — logging must never be load-bearing for the REPL.
func NewLogger() *zap.SugaredLogger {
	var cfg zap.Config

	if os.Getenv("SHELL_DEBUG") == "1" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if path := logFilePath(); path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}

	return logger.Sugar()
}

// logFilePath returns where diagnostic logs are written, next to the
// config file (see configPath). Falls back to a directory under
// os.TempDir() when neither $XDG_CONFIG_HOME nor $HOME is set, so
// logging always has a file to land in rather than defaulting back to
// stderr. The directory is created if missing since zap's file sink
// opens the path directly rather than creating parents.
func logFilePath() string {
	dir := configDir()
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "posh")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}

	return filepath.Join(dir, "posh.log")
}
