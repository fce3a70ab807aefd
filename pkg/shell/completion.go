package shell

import (
	"os"
	"sort"
	"strings"
)

// CompletionSource contributes candidate completions for a prefix. A
// CompletionEngine unions the results of every registered source,
// letting built-in names and PATH executables be searched
// independently and tested in isolation.
type CompletionSource interface {
	Candidates(prefix string) []string
}

// BuiltinSource completes against a fixed set of built-in names.
type BuiltinSource struct {
	Names []string
}

// Candidates implements CompletionSource.
func (s BuiltinSource) Candidates(prefix string) []string {
	var out []string
	for _, name := range s.Names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// PathSource completes against the names of regular files and symbolic
// links found across a list of PATH directories, per spec.md §4.G
// ("entry names in every directory on PATH that are regular files or
// symbolic links"). Execute permission is not checked.
type PathSource struct {
	Dirs []string
}

// Candidates implements CompletionSource. Unreadable directories are
// skipped silently — a broken PATH entry shouldn't break completion
// for the rest of PATH.
func (s PathSource) Candidates(prefix string) []string {
	var out []string

	for _, dir := range s.Dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !strings.HasPrefix(entry.Name(), prefix) {
				continue
			}

			mode := entry.Type()
			if mode.IsRegular() || mode&os.ModeSymlink != 0 {
				out = append(out, entry.Name())
			}
		}
	}

	return out
}

// CompletionResultKind tags the action the line editor should take in
// response to a completion request.
type CompletionResultKind int

const (
	// NoMatch means no candidate matched the current word; do nothing.
	NoMatch CompletionResultKind = iota
	// ReplaceWord means the current word should be replaced with
	// Replacement (which may end in a trailing space).
	ReplaceWord
	// Bell means the terminal bell should ring and nothing inserted —
	// the first tab press against an ambiguous word.
	Bell
	// ListCandidates means Candidates should be printed on a fresh
	// line, followed by a prompt/line redraw — the second tab press.
	ListCandidates
)

// CompletionResult is the outcome of one CompletionEngine.Complete call.
type CompletionResult struct {
	Kind        CompletionResultKind
	Replacement string
	Candidates  []string
}

// CompletionState is the small mutable object spec.md §9 calls for:
// memory of the last (line, cursor) pair offered for completion, the
// consecutive tab-press counter, and the last computed match list. It
// is owned by CompletionEngine, not held as process-global state.
type CompletionState struct {
	lastLine    string
	lastPos     int
	tabCount    int
	lastMatches []string
}

// CompletionEngine implements spec.md §4.G independent of any
// particular line editor, so its LCP-and-double-tab policy is
// unit-testable without a TTY. A readline-backed AutoCompleter
// (internal/editor) wraps this type and translates CompletionResult
// into editor-specific redraw/bell calls.
type CompletionEngine struct {
	sources []CompletionSource
	state   CompletionState
}

// NewCompletionEngine builds an engine over the given sources, tried
// in order and unioned together.
func NewCompletionEngine(sources ...CompletionSource) *CompletionEngine {
	return &CompletionEngine{sources: sources}
}

// NewCompletionEngineFromPath builds the standard engine — built-ins
// plus every directory on pathEnv — without needing a constructed
// Shell. Used by callers (main, in particular) that must build the
// line editor's completer before the Shell itself exists.
func NewCompletionEngineFromPath(pathEnv string) *CompletionEngine {
	return NewCompletionEngine(
		BuiltinSource{Names: builtinNames},
		PathSource{Dirs: NewDefaultPathResolver(pathEnv).Dirs()},
	)
}

// Complete computes the completion action for line at cursor position
// pos, per spec.md §4.G's policy: extend via LCP when possible,
// otherwise bell on the first tab press and list on the second. The
// tab-press counter resets whenever (line, pos) changes from the
// previous call.
func (e *CompletionEngine) Complete(line string, pos int) CompletionResult {
	word := currentWord(line, pos)
	candidates := e.candidatesFor(word)

	lcp := longestCommonPrefix(candidates)
	if len(lcp) > len(word) {
		e.state = CompletionState{}
		replacement := lcp
		if len(candidates) == 1 {
			replacement += " "
		}
		return CompletionResult{Kind: ReplaceWord, Replacement: replacement}
	}

	if len(candidates) == 0 {
		e.state = CompletionState{}
		return CompletionResult{Kind: NoMatch}
	}

	if e.state.lastLine != line || e.state.lastPos != pos {
		e.state = CompletionState{lastLine: line, lastPos: pos, tabCount: 1, lastMatches: candidates}
		return CompletionResult{Kind: Bell}
	}

	e.state.tabCount++
	e.state.lastMatches = candidates

	if e.state.tabCount < 2 {
		return CompletionResult{Kind: Bell}
	}

	return CompletionResult{Kind: ListCandidates, Candidates: candidates}
}

func (e *CompletionEngine) candidatesFor(word string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, src := range e.sources {
		for _, c := range src.Candidates(word) {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}

	sort.Strings(out)
	return out
}

// currentWord returns the run of non-whitespace characters in line
// ending at pos, per spec.md §4.G.
func currentWord(line string, pos int) string {
	if pos > len(line) {
		pos = len(line)
	}

	start := pos
	for start > 0 && !isSpace(line[start-1]) {
		start--
	}

	return line[start:pos]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// longestCommonPrefix returns the longest common prefix of strs, or
// "" if strs is empty.
func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}

	prefix := strs[0]
	for _, s := range strs[1:] {
		prefix = commonPrefix(prefix, s)
		if prefix == "" {
			break
		}
	}

	return prefix
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return a[:i]
}
