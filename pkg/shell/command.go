package shell

import (
	"errors"
	"fmt"
	"sort"
)

// defaultRedirectionOperators is used by a CommandParser built without
// an explicit operator set (NewCommandParser's second argument nil).
// In normal wiring the operator set instead comes from a
// RedirectionManager's KnownOperators, so the folding logic here and
// the handlers that actually apply redirections never drift apart.
var defaultRedirectionOperators = []string{"1>>", "2>>", ">>", "1>", "2>", ">"}

// sortedByLengthDesc returns ops sorted so longer operators are tried
// before their prefixes (">>" before ">", "1>>" before "1>") when
// scanning for a match at a given position.
func sortedByLengthDesc(ops []string) []string {
	out := append([]string(nil), ops...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// splitGluedOperators re-splits tokens that contain a redirection
// operator glued to an adjacent word with no separating whitespace,
// per spec.md §4.A ("recognized anywhere they appear, even when glued
// to an adjacent word"). Empty pieces produced by a split are dropped.
//
// The scan is left-to-right and greedy: once an operator is found at
// the current cursor, everything before it is flushed as a literal
// piece and the cursor resets to the start of the remainder. This
// means a single '1' or '2' immediately preceding '>' is always
// treated as part of the operator (the fd-prefixed form) regardless
// of what precedes that digit; genuine filenames ending in "1" or "2" right
// before a redirection need a separating space to stay literal, same
// as in the upstream shells this grammar is modeled on.
func splitGluedOperators(tokens []string, opsByLength []string) []string {
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		out = append(out, splitOneToken(tok, opsByLength)...)
	}

	return out
}

func splitOneToken(tok string, opsByLength []string) []string {
	var pieces []string

	for {
		idx, op := findOperator(tok, opsByLength)
		if idx < 0 {
			break
		}

		if idx > 0 {
			pieces = append(pieces, tok[:idx])
		}
		pieces = append(pieces, op)
		tok = tok[idx+len(op):]
	}

	if tok != "" {
		pieces = append(pieces, tok)
	}

	return pieces
}

func findOperator(tok string, opsByLength []string) (int, string) {
	for i := 0; i < len(tok); i++ {
		for _, op := range opsByLength {
			if i+len(op) <= len(tok) && tok[i:i+len(op)] == op {
				return i, op
			}
		}
	}
	return -1, ""
}

// CommandKind tags how a ParsedCommand should be dispatched. The tag
// set is closed: an open-ended plug-in model is neither needed nor
// wanted for a shell with six fixed built-ins.
type CommandKind int

const (
	// KindEmpty is produced by a line with no positional tokens
	// (possibly carrying redirections with only side effects).
	KindEmpty CommandKind = iota
	// KindBuiltin tags a command whose Name matches a registered
	// built-in exactly.
	KindBuiltin
	// KindExternal tags every other command.
	KindExternal
)

// RedirectionSpec is produced while folding tokens and consumed by the
// RedirectionManager to actually open files.
type RedirectionSpec struct {
	Operator string // >, >>, 1>, 1>>, 2>, 2>>
	Target   string
	Index    int // position of the operator among the tokens after glued operators are split, for diagnostics
}

// ParsedCommand is the tagged result of folding a token stream: one of
// Empty, Builtin, or External (never both), plus whatever redirections
// were attached. Args excludes Name; Name is the literal token as
// typed, preserved for argv[0] and for builtin dispatch alike.
type ParsedCommand struct {
	Kind         CommandKind
	Name         string
	Args         []string
	Redirections []RedirectionSpec
}

// ErrMissingRedirectDestination is returned when a redirection
// operator has no following path token.
var ErrMissingRedirectDestination = errors.New("missing redirect destination")

// CommandParser folds a raw token stream (as produced by a Tokenizer)
// into a ParsedCommand. It knows nothing about what the builtins
// actually do — only their names — so that the built-in registry and
// the folding logic can evolve separately.
type CommandParser struct {
	isBuiltin   func(name string) bool
	opsByLength []string // longest-first, for splitGluedOperators and operator recognition
}

// NewCommandParser builds a CommandParser that consults isBuiltin to
// decide the dispatch tag for the first positional token, recognizing
// the given set of redirection operators (pass nil to fall back to the
// standard six). Pair with RedirectionManager.KnownOperators so both
// components agree on what counts as an operator.
func NewCommandParser(isBuiltin func(name string) bool, operators []string) *CommandParser {
	if len(operators) == 0 {
		operators = defaultRedirectionOperators
	}
	return &CommandParser{
		isBuiltin:   isBuiltin,
		opsByLength: sortedByLengthDesc(operators),
	}
}

// Parse scans tokens left to right. A redirection operator consumes
// exactly the next token as its target (last occurrence per stream
// wins, since RedirectionManager applies them in order); every other
// token joins the positional list. The spec leaves "what if a
// redirection operator is followed by several more tokens before the
// next operator" unresolved (spec.md §9, Open Question a) — this
// implementation requires exactly one path token per operator: any
// operator with nothing following it is ErrMissingRedirectDestination,
// and a target followed by another word (rather than by another
// operator or the end of the line) is also an error.
func (p *CommandParser) Parse(tokens []string) (ParsedCommand, error) {
	tokens = splitGluedOperators(tokens, p.opsByLength)

	var positional []string
	var redirections []RedirectionSpec

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if !p.isOperator(tok) {
			positional = append(positional, tok)
			continue
		}

		if i == len(tokens)-1 {
			return ParsedCommand{}, fmt.Errorf("%s: %w", tok, ErrMissingRedirectDestination)
		}

		redirections = append(redirections, RedirectionSpec{
			Operator: tok,
			Target:   tokens[i+1],
			Index:    i,
		})
		i++

		if i+1 < len(tokens) && !p.isOperator(tokens[i+1]) {
			return ParsedCommand{}, fmt.Errorf("%s %s: unexpected token %q after redirect destination", tok, tokens[i], tokens[i+1])
		}
	}

	if len(positional) == 0 {
		return ParsedCommand{Kind: KindEmpty, Redirections: redirections}, nil
	}

	name := positional[0]
	args := positional[1:]

	kind := KindExternal
	if p.isBuiltin(name) {
		kind = KindBuiltin
	}

	return ParsedCommand{
		Kind:         kind,
		Name:         name,
		Args:         args,
		Redirections: redirections,
	}, nil
}

func (p *CommandParser) isOperator(tok string) bool {
	for _, op := range p.opsByLength {
		if tok == op {
			return true
		}
	}
	return false
}
