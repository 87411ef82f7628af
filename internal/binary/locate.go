package binary

import (
	"context"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/driversync/internal/command"
	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
	"github.com/ZebulonRouseFrantzich/driversync/internal/version"
)

// FindOnPath returns the absolute path of the first executable named filename
// in the searchPath directories. An empty search path finds nothing.
func FindOnPath(fs afero.Fs, goos string, searchPath []string, filename string) (string, bool) {
	return platform.LookPath(fs, goos, searchPath, filename)
}

// MatchesVersion runs "path -v" and reports whether the printed version equals
// required. Any failure to run or parse counts as a mismatch.
func MatchesVersion(ctx context.Context, runner command.Runner, path string, required version.Release) bool {
	if required.IsZero() {
		return false
	}

	out, err := runner.Run(ctx, path, "-v")
	if err != nil {
		return false
	}

	reported, err := version.ExtractDotted(string(out))
	if err != nil {
		return false
	}

	return reported == required.String()
}
