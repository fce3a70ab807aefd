package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	s := New(bytes.NewReader(nil), &out, &errOut)
	return s, &out, &errOut
}

func TestBuiltinEcho(t *testing.T) {
	s, out, _ := newTestShell(t)
	require.NoError(t, builtinEcho([]string{"hello", "world"}, s))
	assert.Equal(t, "hello world\n", out.String())
}

func TestBuiltinExit_NoArgs(t *testing.T) {
	s, _, _ := newTestShell(t)
	err := builtinExit(nil, s)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 0, exitErr.Code)
}

func TestBuiltinExit_NonZeroCode(t *testing.T) {
	s, _, _ := newTestShell(t)
	err := builtinExit([]string{"42"}, s)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 42, exitErr.Code)
}

func TestBuiltinExit_UnparseableCodeContinuesLoop(t *testing.T) {
	s, _, errOut := newTestShell(t)
	err := builtinExit([]string{"nope"}, s)

	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "Unknown exit code nope")
}

func TestBuiltinType_Builtin(t *testing.T) {
	s, out, _ := newTestShell(t)
	require.NoError(t, builtinType([]string{"echo"}, s))
	assert.Equal(t, "echo is a shell builtin\n", out.String())
}

func TestBuiltinType_NotFoundGoesToStdout(t *testing.T) {
	s, out, errOut := newTestShell(t)
	require.NoError(t, builtinType([]string{"definitely-not-a-real-command"}, s))
	assert.Contains(t, out.String(), "not found")
	assert.Empty(t, errOut.String())
}

func TestBuiltinPwd(t *testing.T) {
	s, out, _ := newTestShell(t)
	require.NoError(t, builtinPwd(nil, s))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd+"\n", out.String())
}

func TestBuiltinCd_ChangesDirectoryAndTracksPrevious(t *testing.T) {
	s, _, _ := newTestShell(t)

	start, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(start)

	target := t.TempDir()
	require.NoError(t, builtinCd([]string{target}, s))

	wd, err := os.Getwd()
	require.NoError(t, err)
	resolvedTarget, _ := filepath.EvalSymlinks(target)
	resolvedWd, _ := filepath.EvalSymlinks(wd)
	assert.Equal(t, resolvedTarget, resolvedWd)
	assert.Equal(t, start, s.previousDir)
}

func TestBuiltinCd_DashReturnsToPrevious(t *testing.T) {
	s, out, _ := newTestShell(t)

	start, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(start)

	target := t.TempDir()
	require.NoError(t, builtinCd([]string{target}, s))
	require.NoError(t, builtinCd([]string{"-"}, s))

	wd, err := os.Getwd()
	require.NoError(t, err)
	resolvedStart, _ := filepath.EvalSymlinks(start)
	resolvedWd, _ := filepath.EvalSymlinks(wd)
	assert.Equal(t, resolvedStart, resolvedWd)
	assert.Contains(t, out.String(), start)
}

func TestBuiltinCd_NoSuchDirectory(t *testing.T) {
	s, _, errOut := newTestShell(t)
	require.NoError(t, builtinCd([]string{"/no/such/directory/at/all"}, s))
	assert.Contains(t, errOut.String(), "No such file or directory")
}

func TestBuiltinHistory(t *testing.T) {
	s, out, _ := newTestShell(t)
	s.readliner = &fakeHistoryReadLiner{lines: []string{"echo a", "echo b", "echo c"}}

	require.NoError(t, builtinHistory(nil, s))
	assert.Equal(t, "    1  echo a\n    2  echo b\n    3  echo c\n", out.String())
}

type fakeHistoryReadLiner struct {
	lines []string
}

func (f *fakeHistoryReadLiner) Readline() (string, error) { return "", nil }
func (f *fakeHistoryReadLiner) SetPrompt(string)           {}
func (f *fakeHistoryReadLiner) History() []string          { return f.lines }
func (f *fakeHistoryReadLiner) Close() error               { return nil }
