package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPathResolver_Resolve(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit semantics differ on windows")
	}

	dir := t.TempDir()

	execPath := filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(execPath, []byte("#!/bin/sh\n"), 0755))

	nonExecPath := filepath.Join(dir, "notexec")
	require.NoError(t, os.WriteFile(nonExecPath, []byte("data"), 0644))

	resolver := NewDefaultPathResolver(dir)

	path, ok := resolver.Resolve("mytool")
	require.True(t, ok)
	assert.Equal(t, execPath, path)

	_, ok = resolver.Resolve("notexec")
	assert.False(t, ok)

	_, ok = resolver.Resolve("doesnotexist")
	assert.False(t, ok)
}

func TestDefaultPathResolver_SearchesInOrder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit semantics differ on windows")
	}

	dirA := t.TempDir()
	dirB := t.TempDir()

	pathA := filepath.Join(dirA, "tool")
	pathB := filepath.Join(dirB, "tool")

	require.NoError(t, os.WriteFile(pathA, []byte(""), 0755))
	require.NoError(t, os.WriteFile(pathB, []byte(""), 0755))

	resolver := NewDefaultPathResolver(dirA + string(os.PathListSeparator) + dirB)

	path, ok := resolver.Resolve("tool")
	require.True(t, ok)
	assert.Equal(t, pathA, path)
}

func TestDefaultPathResolver_Dirs(t *testing.T) {
	resolver := NewDefaultPathResolver("/a" + string(os.PathListSeparator) + "/b")
	assert.Equal(t, []string{"/a", "/b"}, resolver.Dirs())
}
