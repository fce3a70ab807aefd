//go:build windows

package shell

import (
	"os"
	"strings"
)

// isExecutable implements the alternate-platform rule from spec.md
// §4.C: a regular file whose extension is ".exe", case-insensitive.
func isExecutable(info os.FileInfo, path string) bool {
	return info.Mode().IsRegular() && strings.EqualFold(filepathExt(path), ".exe")
}

func filepathExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}
