package shell

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ExitError is returned by the exit builtin to unwind the read-eval
// loop with a specific process exit status, per spec.md §4.D and the
// Open Question resolution in SPEC_FULL §5(c): exit always terminates
// the loop, including for a non-zero code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// Builtin is the function signature for a built-in command. args
// excludes the command name. Returning an *ExitError terminates the
// read-eval loop; any other non-nil error is reported to stderr and
// the loop continues.
type Builtin func(args []string, s *Shell) error

// builtinNames lists the fixed built-in set plus the ones this repo
// supplements (history, per SPEC_FULL §4) — used by the completion
// engine's BuiltinSource.
var builtinNames = []string{"exit", "echo", "type", "pwd", "cd", "history"}

func (s *Shell) registerBuiltins() {
	s.builtins = map[string]Builtin{
		"echo":    builtinEcho,
		"exit":    builtinExit,
		"type":    builtinType,
		"pwd":     builtinPwd,
		"cd":      builtinCd,
		"history": builtinHistory,
	}
}

func builtinEcho(args []string, s *Shell) error {
	fmt.Fprintln(s.Out, strings.Join(args, " "))
	return nil
}

func builtinExit(args []string, s *Shell) error {
	if len(args) == 0 {
		return &ExitError{Code: 0}
	}

	code, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.Err, "Unknown exit code %s\n", args[0])
		return nil
	}

	return &ExitError{Code: code}
}

func builtinType(args []string, s *Shell) error {
	if len(args) == 0 {
		fmt.Fprintln(s.Out, "type: usage: type NAME")
		return nil
	}

	name := args[0]

	if _, ok := s.builtins[name]; ok {
		fmt.Fprintf(s.Out, "%s is a shell builtin\n", name)
		return nil
	}

	if path, ok := s.resolver.Resolve(name); ok {
		fmt.Fprintf(s.Out, "%s is %s\n", name, path)
		return nil
	}

	// Emitted to stdout, not stderr — see SPEC_FULL §5(b).
	fmt.Fprintf(s.Out, "%s: not found\n", name)
	return nil
}

func builtinPwd(args []string, s *Shell) error {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(s.Err, "pwd:", err)
		return nil
	}

	fmt.Fprintln(s.Out, dir)
	return nil
}

func builtinCd(args []string, s *Shell) error {
	var target string

	switch {
	case len(args) == 0:
		target = os.Getenv("HOME")
		if target == "" {
			fmt.Fprintln(s.Err, "cd: HOME environment variable not set")
			return nil
		}

	case args[0] == "-":
		if s.previousDir == "" {
			fmt.Fprintln(s.Err, "cd: OLDPWD not set")
			return nil
		}
		target = s.previousDir

	case args[0] == "~":
		home := os.Getenv("HOME")
		if home == "" {
			fmt.Fprintln(s.Err, "cd: HOME environment variable not set")
			return nil
		}
		target = home

	default:
		target = args[0]
	}

	current, _ := os.Getwd()

	if err := os.Chdir(target); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(s.Err, "cd: %s: No such file or directory\n", target)
		} else {
			fmt.Fprintf(s.Err, "cd: %v\n", err)
		}
		return nil
	}

	s.previousDir = current

	if len(args) > 0 && args[0] == "-" {
		newDir, _ := os.Getwd()
		fmt.Fprintln(s.Out, newDir)
	}

	return nil
}

// builtinHistory prints the lines the ReadLiner reports through
// History (for the interactive editor, the lines read this session),
// one entry per line, 1-indexed. An optional argument limits output to the last n
// entries. See SPEC_FULL §4 for why this lives here rather than
// introducing a separate persistence model: it reads state the line
// editor already owns.
func builtinHistory(args []string, s *Shell) error {
	if s.readliner == nil {
		return nil
	}

	entries := s.readliner.History()

	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n >= 0 && n < len(entries) {
			entries = entries[len(entries)-n:]
		}
	}

	offset := len(s.readliner.History()) - len(entries) + 1
	for i, entry := range entries {
		fmt.Fprintf(s.Out, "%5d  %s\n", offset+i, entry)
	}

	return nil
}
