package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionEngine_ExtendsByLongestCommonPrefix(t *testing.T) {
	engine := NewCompletionEngine(BuiltinSource{Names: []string{"echo", "exit", "echoed"}})

	result := engine.Complete("ec", 2)

	assert.Equal(t, ReplaceWord, result.Kind)
	assert.Equal(t, "echo", result.Replacement)
}

func TestCompletionEngine_SingleMatchAppendsTrailingSpace(t *testing.T) {
	engine := NewCompletionEngine(BuiltinSource{Names: []string{"echo", "exit"}})

	result := engine.Complete("ec", 2)

	assert.Equal(t, ReplaceWord, result.Kind)
	assert.Equal(t, "echo ", result.Replacement)
}

func TestCompletionEngine_AmbiguousFirstTabRingsBell(t *testing.T) {
	engine := NewCompletionEngine(BuiltinSource{Names: []string{"echo", "exit"}})

	result := engine.Complete("e", 1)

	assert.Equal(t, Bell, result.Kind)
}

func TestCompletionEngine_AmbiguousSecondTabLists(t *testing.T) {
	engine := NewCompletionEngine(BuiltinSource{Names: []string{"echo", "exit"}})

	first := engine.Complete("e", 1)
	assert.Equal(t, Bell, first.Kind)

	second := engine.Complete("e", 1)
	assert.Equal(t, ListCandidates, second.Kind)
	assert.ElementsMatch(t, []string{"echo", "exit"}, second.Candidates)
}

func TestCompletionEngine_TabCounterResetsOnLineChange(t *testing.T) {
	engine := NewCompletionEngine(BuiltinSource{Names: []string{"echo", "exit"}})

	engine.Complete("e", 1)
	second := engine.Complete("ex", 2)

	assert.Equal(t, ReplaceWord, second.Kind)
	assert.Equal(t, "exit ", second.Replacement)

	third := engine.Complete("e", 1)
	assert.Equal(t, Bell, third.Kind)
}

func TestCompletionEngine_NoMatch(t *testing.T) {
	engine := NewCompletionEngine(BuiltinSource{Names: []string{"echo"}})

	result := engine.Complete("zzz", 3)

	assert.Equal(t, NoMatch, result.Kind)
}

func TestCompletionEngine_UnionsAndDedupsSources(t *testing.T) {
	engine := NewCompletionEngine(
		BuiltinSource{Names: []string{"echo"}},
		BuiltinSource{Names: []string{"echo", "env"}},
	)

	result := engine.Complete("e", 1)
	assert.Equal(t, Bell, result.Kind)

	result = engine.Complete("e", 1)
	assert.ElementsMatch(t, []string{"echo", "env"}, result.Candidates)
}

func TestCurrentWord(t *testing.T) {
	assert.Equal(t, "ec", currentWord("ec", 2))
	assert.Equal(t, "lo", currentWord("echo lo", 7))
	assert.Equal(t, "", currentWord("echo ", 5))
}

func TestLongestCommonPrefix(t *testing.T) {
	assert.Equal(t, "ech", longestCommonPrefix([]string{"echo", "echoed", "echidna"}))
	assert.Equal(t, "", longestCommonPrefix([]string{"echo", "exit"}))
	assert.Equal(t, "", longestCommonPrefix(nil))
}
