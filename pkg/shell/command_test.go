package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isBuiltinFixture(name string) bool {
	switch name {
	case "echo", "exit", "type", "pwd", "cd":
		return true
	default:
		return false
	}
}

func TestCommandParser_Parse(t *testing.T) {
	parser := NewCommandParser(isBuiltinFixture, nil)

	tests := []struct {
		name     string
		tokens   []string
		wantKind CommandKind
		wantName string
		wantArgs []string
	}{
		{
			name:     "empty tokens",
			tokens:   nil,
			wantKind: KindEmpty,
		},
		{
			name:     "builtin command",
			tokens:   []string{"echo", "hello", "world"},
			wantKind: KindBuiltin,
			wantName: "echo",
			wantArgs: []string{"hello", "world"},
		},
		{
			name:     "external command",
			tokens:   []string{"ls", "-la"},
			wantKind: KindExternal,
			wantName: "ls",
			wantArgs: []string{"-la"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantArgs, got.Args)
		})
	}
}

func TestCommandParser_Redirections(t *testing.T) {
	parser := NewCommandParser(isBuiltinFixture, nil)

	got, err := parser.Parse([]string{"ls", "/tmp/baz", ">", "/tmp/foo/baz.md"})
	require.NoError(t, err)

	assert.Equal(t, KindExternal, got.Kind)
	assert.Equal(t, "ls", got.Name)
	assert.Equal(t, []string{"/tmp/baz"}, got.Args)
	require.Len(t, got.Redirections, 1)
	assert.Equal(t, RedirectionSpec{Operator: ">", Target: "/tmp/foo/baz.md", Index: 2}, got.Redirections[0])
}

func TestCommandParser_GluedOperator(t *testing.T) {
	parser := NewCommandParser(isBuiltinFixture, nil)

	got, err := parser.Parse([]string{"ls", "/tmp/baz>out.txt"})
	require.NoError(t, err)

	assert.Equal(t, "ls", got.Name)
	require.Len(t, got.Redirections, 1)
	assert.Equal(t, ">", got.Redirections[0].Operator)
	assert.Equal(t, "out.txt", got.Redirections[0].Target)
	assert.Equal(t, []string{"/tmp/baz"}, got.Args)
}

func TestCommandParser_MissingRedirectDestination(t *testing.T) {
	parser := NewCommandParser(isBuiltinFixture, nil)

	_, err := parser.Parse([]string{"ls", ">"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRedirectDestination))
}

func TestCommandParser_LastRedirectionWins(t *testing.T) {
	parser := NewCommandParser(isBuiltinFixture, nil)

	got, err := parser.Parse([]string{"cmd", ">", "a.txt", ">", "b.txt"})
	require.NoError(t, err)
	require.Len(t, got.Redirections, 2)
	assert.Equal(t, "b.txt", got.Redirections[1].Target)
}

func TestSplitGluedOperators(t *testing.T) {
	ops := sortedByLengthDesc(defaultRedirectionOperators)

	got := splitGluedOperators([]string{"1>>out.log"}, ops)
	assert.Equal(t, []string{"1>>", "out.log"}, got)

	got = splitGluedOperators([]string{"plain"}, ops)
	assert.Equal(t, []string{"plain"}, got)
}
