package editor

import (
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether f is attached to a real terminal, using
// golang.org/x/term the way javanhut/ravenshell and
// specstoryai/getspecstory both do for the same check. A readline
// instance's raw-mode handling only makes sense against a TTY; a
// pipe or redirected file should fall back to the scripted reader.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
