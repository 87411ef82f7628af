package platform

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// LookPath returns the absolute path of the first executable named name in
// the searchPath directories. An empty search path finds nothing.
func LookPath(fs afero.Fs, goos string, searchPath []string, name string) (string, bool) {
	for _, dir := range searchPath {
		candidate, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		info, err := fs.Stat(candidate)
		if err != nil {
			continue
		}
		if IsExecutable(info, goos) {
			return candidate, true
		}
	}
	return "", false
}

// IsExecutable reports whether info describes a regular file that can be run.
// Windows has no executable bit; any regular file qualifies.
func IsExecutable(info os.FileInfo, goos string) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if goos == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
