// Package editor wires github.com/chzyer/readline in as the terminal
// line editor spec.md §1 treats as an external collaborator: it owns
// the cursor, the history ring, and the bell. The policy — longest
// common prefix computation, the candidate set, and the tab-press
// counting in shell.CompletionEngine — stays in package shell so it
// can be unit-tested without a TTY; this package only bridges that
// policy onto readline's AutoCompleter interface.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/naveen/posh/pkg/shell"
)

// Editor implements shell.ReadLiner on top of a *readline.Instance.
type Editor struct {
	instance *readline.Instance
	history  []string
}

// New builds an interactive Editor. historyFile and historyLimit
// follow SPEC_FULL §2.3's configuration keys; an empty historyFile
// disables persistent history the way readline.Config documents.
func New(prompt, historyFile string, historyLimit int, engine *shell.CompletionEngine) (*Editor, error) {
	completer := &autoCompleter{engine: engine}

	instance, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		HistoryLimit:    historyLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return nil, fmt.Errorf("editor: failed to start terminal: %w", err)
	}

	completer.out = instance.Stderr()

	return &Editor{instance: instance}, nil
}

// Readline implements shell.ReadLiner.
func (e *Editor) Readline() (string, error) {
	line, err := e.instance.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", shell.ErrInterrupted
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}

	e.history = append(e.history, line)
	return line, nil
}

// SetPrompt implements shell.ReadLiner.
func (e *Editor) SetPrompt(prompt string) {
	e.instance.SetPrompt(prompt)
}

// History implements shell.ReadLiner, oldest first. readline owns its
// own history ring for up-arrow recall and optional HistoryFile
// persistence; this is a parallel record kept solely so the history
// builtin has something to read without reaching into readline
// internals.
func (e *Editor) History() []string {
	return append([]string(nil), e.history...)
}

// Close implements shell.ReadLiner.
func (e *Editor) Close() error {
	return e.instance.Close()
}

// IsInteractive reports whether fd looks like a real terminal —
// callers use this to decide between an Editor and the package
// shell's bufio-based fallback, per SPEC_FULL §3.2.
func IsInteractive(f *os.File) bool {
	return isTerminal(f)
}

// autoCompleter bridges readline.AutoCompleter onto
// shell.CompletionEngine. Do's contract is: return the set of
// candidate suffixes to append after the current word (as rune
// slices), and the number of trailing runes of the current word those
// suffixes replace.
type autoCompleter struct {
	engine *shell.CompletionEngine
	out    io.Writer
}

func (c *autoCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line)
	result := c.engine.Complete(text, pos)
	wordLen := currentWordLen(text, pos)

	switch result.Kind {
	case shell.ReplaceWord:
		suffix := result.Replacement[wordLen:]
		return [][]rune{[]rune(suffix)}, wordLen

	case shell.ListCandidates:
		if c.out != nil {
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, strings.Join(result.Candidates, "  "))
		}
		return nil, 0

	case shell.Bell:
		if c.out != nil {
			fmt.Fprint(c.out, "\a")
		}
		return nil, 0

	default: // shell.NoMatch
		return nil, 0
	}
}

// currentWordLen duplicates shell's private currentWord boundary rule
// (run of non-whitespace ending at pos) — readline's AutoCompleter
// needs the replaced-run length independent of the engine call.
func currentWordLen(line string, pos int) int {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && line[start-1] != ' ' && line[start-1] != '\t' {
		start--
	}
	return pos - start
}
