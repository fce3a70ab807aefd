package shell

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when an executable cannot be located by a
// PathResolver.
var ErrNotFound = errors.New("not found")

// IOBindings represents the I/O streams handed to a command: stdin,
// stdout, and stderr. A RedirectionManager produces one of these per
// command from the shell's base streams plus any redirection specs.
type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultExecutor runs external commands with os/exec, resolving the
// executable path through Resolver.
//
// When SHELL_DEBUG=1 is set, each spawned child's wall-clock duration
// is logged through Logger — a purely observational addition (see
// SPEC_FULL §4); it never touches the command's own stdout/stderr.
type DefaultExecutor struct {
	Resolver PathResolver
	Logger   *zap.SugaredLogger
}

// NewDefaultExecutor wires a resolver and logger together. A nil
// logger is replaced with a no-op one so callers never need a nil
// check.
func NewDefaultExecutor(resolver PathResolver, logger *zap.SugaredLogger) *DefaultExecutor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DefaultExecutor{Resolver: resolver, Logger: logger}
}

// Execute implements Executor. argv[0] of the spawned process is the
// original command name as typed, never the resolved absolute path,
// per spec.md §9 ("argv[0] preservation") — many programs branch on
// their own invocation name.
func (e *DefaultExecutor) Execute(ctx context.Context, name string, args []string, io_ IOBindings) (int, error) {
	path, ok := e.Resolver.Resolve(name)
	if !ok {
		return -1, ErrNotFound
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Args = append([]string{name}, args...)
	cmd.Stdin = io_.Stdin
	cmd.Stdout = io_.Stdout
	cmd.Stderr = io_.Stderr

	start := time.Now()
	err := cmd.Run()
	e.Logger.Debugw("spawned external command", "name", name, "path", path, "duration", time.Since(start))

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, nil
	}

	return 0, nil
}
