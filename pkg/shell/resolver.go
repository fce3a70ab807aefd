package shell

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathResolver searches PATH directories for the first
// executable file matching a bare command name, per spec.md §4.C.
//
// A name that already contains a path separator bypasses the search
// entirely: the literal name is used as-is, matching how most POSIX
// shells treat "./foo" or "/bin/foo" differently from a bare "foo".
type DefaultPathResolver struct {
	dirs []string
}

// NewDefaultPathResolver captures PATH at construction time. Later
// changes to the PATH environment variable do not affect an already
// constructed resolver — mirroring the teacher's original Shell.Lookup,
// which read PATH once in New.
func NewDefaultPathResolver(pathEnv string) *DefaultPathResolver {
	var dirs []string
	if pathEnv != "" {
		dirs = strings.Split(pathEnv, string(os.PathListSeparator))
	}
	return &DefaultPathResolver{dirs: dirs}
}

// Dirs returns the PATH directories this resolver searches, in order.
// Used by the completion engine's PathSource so completion and
// resolution always agree on what counts as "on PATH".
func (r *DefaultPathResolver) Dirs() []string {
	return append([]string(nil), r.dirs...)
}

// Resolve implements PathResolver.
func (r *DefaultPathResolver) Resolve(name string) (string, bool) {
	if strings.ContainsRune(name, os.PathSeparator) {
		if info, err := os.Stat(name); err == nil && isExecutable(info, name) {
			return name, true
		}
		return "", false
	}

	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info, candidate) {
			return candidate, true
		}
	}

	return "", false
}
