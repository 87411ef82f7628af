package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/driversync/internal/command"
	"github.com/ZebulonRouseFrantzich/driversync/internal/logging"
	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
	"github.com/ZebulonRouseFrantzich/driversync/internal/version"
)

const (
	// MacAppBundle is the default Chrome executable inside the macOS app bundle.
	MacAppBundle = "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"
)

var (
	// WindowsExecutables are the conventional chrome.exe install locations.
	WindowsExecutables = []string{
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	// UnixExecutables are probed in order on Linux and macOS.
	UnixExecutables = []string{
		"google-chrome",
		"chrome",
		"chrome-browser",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
	}

	// versionFolderRegex matches the N.N.N.N folder Chrome keeps next to chrome.exe.
	versionFolderRegex = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+`)
)

// NotFoundError is returned when no installed browser yields a version.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return "no installed Chrome/Chromium browser found"
	}
	return fmt.Sprintf("no installed Chrome/Chromium browser found (tried %s)", strings.Join(e.Tried, ", "))
}

// Config holds the collaborators of a Locator.
type Config struct {
	Fs       afero.Fs
	Runner   command.Runner
	Platform *platform.Info
	Logger   logging.Logger

	// SearchPath resolves bare executable names. Nil leaves resolution to
	// the Runner.
	SearchPath []string
}

// Locator finds the installed browser version.
type Locator struct {
	fs         afero.Fs
	runner     command.Runner
	platform   *platform.Info
	logger     logging.Logger
	searchPath []string
}

// NewLocator creates a browser locator.
func NewLocator(cfg Config) (*Locator, error) {
	if cfg.Platform == nil {
		return nil, fmt.Errorf("platform info is required")
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Runner == nil {
		cfg.Runner = command.NewExecRunner()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	return &Locator{
		fs:         cfg.Fs,
		runner:     cfg.Runner,
		platform:   cfg.Platform,
		logger:     cfg.Logger,
		searchPath: cfg.SearchPath,
	}, nil
}

// Version returns the raw version string of the installed browser.
// hint is an explicit browser executable path, e.g. a portable install; it
// may be empty.
func (l *Locator) Version(ctx context.Context, hint string) (string, error) {
	if l.platform.IsWindows() {
		return l.versionFromFolders(hint)
	}
	return l.versionFromExecutables(ctx, hint)
}

// versionFromFolders scans the version-numbered siblings of each candidate
// chrome.exe and returns the folder name with the highest major version.
func (l *Locator) versionFromFolders(hint string) (string, error) {
	candidates := WindowsExecutables
	if hint != "" {
		candidates = []string{hint}
	}

	folders := make(map[int]string)
	var majors []int
	for _, exe := range candidates {
		pattern := filepath.Join(filepath.Dir(exe), "*.*.*.*")
		siblings, err := afero.Glob(l.fs, pattern)
		if err != nil {
			l.logger.Debug("glob version folders failed", "pattern", pattern, "error", err)
			continue
		}

		for _, sibling := range siblings {
			name := filepath.Base(sibling)
			if !versionFolderRegex.MatchString(name) {
				continue
			}
			major, err := version.ExtractMajor(name)
			if err != nil {
				continue
			}
			if _, seen := folders[major]; !seen {
				folders[major] = name
				majors = append(majors, major)
			}
		}
	}

	bestMajor, ok := version.Highest(majors)
	if !ok {
		return "", &NotFoundError{Tried: candidates}
	}
	best := folders[bestMajor]

	l.logger.Debug("browser version folder selected", "folder", best)
	return best, nil
}

// versionFromExecutables probes conventional executable names with --version.
func (l *Locator) versionFromExecutables(ctx context.Context, hint string) (string, error) {
	var names []string
	if hint != "" {
		names = append(names, hint)
	}
	if l.platform.IsMacOS() {
		names = append(names, MacAppBundle)
	}
	names = append(names, UnixExecutables...)

	probes := make([]Probe, 0, len(names))
	for _, name := range names {
		probes = append(probes, l.executableProbe(name))
	}

	raw, ok := FirstSuccess(ctx, probes, func(p Probe, err error) {
		l.logger.Debug("browser candidate skipped", "candidate", p.Name, "error", err)
	})
	if !ok {
		if ctx.Err() != nil {
			return "", fmt.Errorf("locate browser: %w", ctx.Err())
		}
		return "", &NotFoundError{Tried: names}
	}

	return raw, nil
}

func (l *Locator) executableProbe(name string) Probe {
	return Probe{
		Name: name,
		Check: func(ctx context.Context) (string, error) {
			path, err := l.resolve(name)
			if err != nil {
				return "", err
			}
			out, err := l.runner.Run(ctx, path, "--version")
			if err != nil {
				return "", err
			}
			raw := strings.TrimSpace(string(out))
			if _, err := version.ExtractMajor(raw); err != nil {
				return "", err
			}
			return raw, nil
		},
	}
}

// resolve maps a bare executable name to its absolute path on the search
// path. Names with a directory component are used as given.
func (l *Locator) resolve(name string) (string, error) {
	if l.searchPath == nil || strings.ContainsAny(name, `/\`) {
		return name, nil
	}
	path, ok := platform.LookPath(l.fs, l.platform.OS, l.searchPath, name)
	if !ok {
		return "", fmt.Errorf("%s: not found on search path", name)
	}
	return path, nil
}
