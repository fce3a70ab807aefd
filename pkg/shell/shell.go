// Package shell implements an interactive POSIX-style command-line
// shell: lexing under quoting/escape rules, dispatch to built-in or
// external commands, PATH resolution, uniform stdout/stderr
// redirection, and tab completion. The terminal line editor itself
// (history ring, cursor handling, bell) is an external collaborator
// reached through the ReadLiner interface — see internal/editor for
// the interactive implementation and this package's bufioReadLiner
// for the non-interactive fallback used by scripts and tests.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Shell orchestrates the read-eval loop described in spec.md §4.H: it
// owns no terminal state of its own beyond the current working
// directory (mutated by cd) and the previous directory (for cd -);
// everything else is delegated to its components.
//
// Shell instances are not safe for concurrent use.
type Shell struct {
	readliner ReadLiner
	Out       io.Writer
	Err       io.Writer

	builtins           map[string]Builtin
	tokenizer          Tokenizer
	parser             *CommandParser
	redirectionManager *RedirectionManager
	executor           Executor
	resolver           PathResolver

	logger      *zap.SugaredLogger
	config      Config
	previousDir string
}

// New creates a Shell that reads lines from reader with a plain
// bufio-based reader — the non-interactive fallback from SPEC_FULL
// §3.2, appropriate for scripts, pipes, and tests. Interactive
// sessions should use NewWithReadLiner with a TTY-backed ReadLiner
// instead (see internal/editor).
func New(reader io.Reader, out, errw io.Writer) *Shell {
	return newShell(newBufioReadLiner(reader, out), out, errw)
}

// NewWithReadLiner creates a Shell driven by an arbitrary ReadLiner,
// letting callers plug in a readline-backed interactive editor.
func NewWithReadLiner(rl ReadLiner, out, errw io.Writer) *Shell {
	return newShell(rl, out, errw)
}

func newShell(rl ReadLiner, out, errw io.Writer) *Shell {
	logger := NewLogger()
	cfg := LoadConfig(logger)
	resolver := NewDefaultPathResolver(os.Getenv("PATH"))
	redirMgr := NewRedirectionManager(&DefaultFileOpener{})

	s := &Shell{
		readliner:          rl,
		Out:                out,
		Err:                errw,
		tokenizer:          NewDefaultTokenizer(),
		redirectionManager: redirMgr,
		executor:           NewDefaultExecutor(resolver, logger),
		resolver:           resolver,
		logger:             logger,
		config:             cfg,
	}

	s.registerBuiltins()
	s.parser = NewCommandParser(s.isBuiltin, redirMgr.KnownOperators())
	rl.SetPrompt(cfg.Prompt)

	return s
}

func (s *Shell) isBuiltin(name string) bool {
	_, ok := s.builtins[name]
	return ok
}

// Run drives the read-eval loop until end-of-input or exit. It
// returns the process exit code and a non-nil error only for a fatal,
// non-recoverable read error on the input stream (spec.md §7).
func (s *Shell) Run() (int, error) {
	defer s.readliner.Close()

	for {
		line, err := s.readliner.Readline()

		if errors.Is(err, ErrInterrupted) {
			continue
		}

		if errors.Is(err, io.EOF) {
			return 0, nil
		}

		if err != nil {
			return 1, err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if exitErr := s.executeLine(trimmed); exitErr != nil {
			return exitErr.Code, nil
		}
	}
}

// executeLine runs a single non-blank input line through lex → parse
// → redirect → dispatch. It returns a non-nil *ExitError only when the
// exit builtin was invoked; every other error is reported to stderr
// and swallowed so the loop continues, per spec.md §7's policy.
func (s *Shell) executeLine(line string) *ExitError {
	tokens, err := s.tokenizer.Tokenize(line)
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return nil
	}

	if len(tokens) == 0 {
		return nil
	}

	parsed, err := s.parser.Parse(tokens)
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return nil
	}

	baseBindings := IOBindings{Stdin: os.Stdin, Stdout: s.Out, Stderr: s.Err}

	ioBindings, cleanup, err := s.redirectionManager.ApplyRedirections(parsed.Redirections, baseBindings)
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return nil
	}
	if cleanup != nil {
		defer cleanup()
	}

	switch parsed.Kind {
	case KindEmpty:
		return nil

	case KindBuiltin:
		return s.runBuiltin(parsed, ioBindings)

	default: // KindExternal
		s.runExternal(parsed, ioBindings)
		return nil
	}
}

func (s *Shell) runBuiltin(parsed ParsedCommand, ioBindings IOBindings) *ExitError {
	builtin := s.builtins[parsed.Name]

	prevOut, prevErr := s.Out, s.Err
	s.Out, s.Err = ioBindings.Stdout, ioBindings.Stderr

	err := builtin(parsed.Args, s)

	s.Out, s.Err = prevOut, prevErr

	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	fmt.Fprintln(s.Err, "builtin error:", err)
	return nil
}

func (s *Shell) runExternal(parsed ParsedCommand, ioBindings IOBindings) {
	_, err := s.executor.Execute(context.Background(), parsed.Name, parsed.Args, ioBindings)

	if errors.Is(err, ErrNotFound) {
		fmt.Fprintf(ioBindings.Stderr, "%s: command not found\n", parsed.Name)
		return
	}

	if err != nil {
		fmt.Fprintln(ioBindings.Stderr, "error running command:", err)
	}
}

// bufioReadLiner is the non-interactive fallback ReadLiner: it draws
// its own prompt onto w and reads a line with bufio.Reader, with no
// history or completion support. Used whenever stdin isn't a TTY
// (SPEC_FULL §3.2) and directly by New for scripts and tests.
type bufioReadLiner struct {
	r      *bufio.Reader
	w      io.Writer
	prompt string
}

func newBufioReadLiner(r io.Reader, w io.Writer) *bufioReadLiner {
	return &bufioReadLiner{r: bufio.NewReader(r), w: w, prompt: "$ "}
}

func (b *bufioReadLiner) SetPrompt(prompt string) { b.prompt = prompt }

func (b *bufioReadLiner) History() []string { return nil }

func (b *bufioReadLiner) Close() error { return nil }

func (b *bufioReadLiner) Readline() (string, error) {
	fmt.Fprint(b.w, b.prompt)

	line, err := b.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\n"), nil
		}
		return "", err
	}

	return strings.TrimRight(line, "\n"), nil
}
