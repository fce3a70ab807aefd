// Command posh is an interactive POSIX-style command-line shell.
//
// It supports the built-in commands exit, echo, type, pwd, cd, and
// history; external commands resolved from PATH; single/double-quote
// and backslash lexing; and stdout/stderr redirection via >, >>, 1>,
// 1>>, 2>, and 2>>.
//
// When stdin is a terminal, posh uses a readline-backed line editor
// with history and tab completion. Otherwise — scripts, pipes, CI —
// it falls back to a plain buffered reader.
//
// An optional config file at $XDG_CONFIG_HOME/posh/config.toml (or
// ~/.config/posh/config.toml) may override the prompt string, history
// file location, and history limit. A no_color key is also accepted,
// but posh prints no colored output either way.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/naveen/posh/internal/editor"
	"github.com/naveen/posh/pkg/shell"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := shell.NewLogger()
	defer logger.Sync()

	cfg := shell.LoadConfig(logger)

	var sh *shell.Shell

	if editor.IsInteractive(os.Stdin) {
		interactive, err := newInteractiveShell(cfg)
		if err != nil {
			logger.Warnw("falling back to non-interactive input", "error", err)
			sh = shell.New(os.Stdin, os.Stdout, os.Stderr)
		} else {
			sh = interactive
		}
	} else {
		sh = shell.New(os.Stdin, os.Stdout, os.Stderr)
	}

	code, err := sh.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return code
}

func newInteractiveShell(cfg shell.Config) (*shell.Shell, error) {
	engine := shell.NewCompletionEngineFromPath(os.Getenv("PATH"))

	ed, err := editor.New(cfg.Prompt, historyFilePath(cfg.HistoryFile), cfg.HistoryLimit, engine)
	if err != nil {
		return nil, err
	}

	return shell.NewWithReadLiner(ed, os.Stdout, os.Stderr), nil
}

func historyFilePath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			return ""
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
