//go:build !windows

package shell

import "os"

// isExecutable implements the POSIX rule from spec.md §4.C: a regular
// file with any of the owner/group/other execute bits set.
func isExecutable(info os.FileInfo, _ string) bool {
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
