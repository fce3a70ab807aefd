package shell

import (
	"context"
	"errors"
)

// Executor runs a resolved external command and waits for it to finish.
type Executor interface {
	Execute(ctx context.Context, name string, args []string, io IOBindings) (int, error)
}

// PathResolver locates an executable by name. Implementations search
// PATH directories and apply the platform's executability rule.
type PathResolver interface {
	Resolve(name string) (path string, found bool)
}

// ErrInterrupted is returned by a ReadLiner when the current partial
// line was abandoned (e.g. Ctrl+C) rather than completed or ended.
var ErrInterrupted = errors.New("input interrupted")

// ReadLiner supplies one line of input per call, however it is
// sourced — a raw TTY with history/completion, or a plain buffered
// reader over a script or pipe.
type ReadLiner interface {
	// Readline returns the next line (without its trailing newline).
	// io.EOF signals end of input; ErrInterrupted signals that the
	// current partial line was abandoned and the loop should re-prompt.
	Readline() (string, error)

	// SetPrompt changes the string written before each read. The
	// ReadLiner draws the prompt itself; Shell.Run never writes one.
	SetPrompt(prompt string)

	// History returns accumulated input history, oldest first. A
	// fallback reader with no history support returns nil.
	History() []string

	Close() error
}
