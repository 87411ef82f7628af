package binary

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/driversync/internal/command"
	"github.com/ZebulonRouseFrantzich/driversync/internal/fetch"
	"github.com/ZebulonRouseFrantzich/driversync/internal/logging"
	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
	"github.com/ZebulonRouseFrantzich/driversync/internal/release"
	"github.com/ZebulonRouseFrantzich/driversync/internal/version"
)

// BrowserLocator reports the raw version string of the installed browser.
type BrowserLocator interface {
	Version(ctx context.Context, hint string) (string, error)
}

// ReleaseResolver maps a browser major version to a driver release.
type ReleaseResolver interface {
	Latest(ctx context.Context, major int) (version.Release, error)
}

// Config holds configuration for the driver manager
type Config struct {
	// Platform describes the running machine. Required.
	Platform *platform.Info
	// SearchPath lists directories scanned for an existing driver, in order.
	SearchPath []string
	// BaseURL of the archive endpoint (default release.DefaultBaseURL).
	BaseURL string

	Browser   BrowserLocator  // required
	Resolver  ReleaseResolver // required
	Fetcher   fetch.Fetcher   // required
	Fs        afero.Fs
	Runner    command.Runner
	Extractor Extractor
	Logger    logging.Logger
}

// Manager orchestrates driver detection, download and installation
type Manager struct {
	platform   *platform.Info
	searchPath []string
	baseURL    string
	browser    BrowserLocator
	resolver   ReleaseResolver
	fetcher    fetch.Fetcher
	fs         afero.Fs
	runner     command.Runner
	extractor  Extractor
	logger     logging.Logger
}

// NewManager creates a new driver manager
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Platform == nil {
		return nil, fmt.Errorf("Platform is required")
	}
	if cfg.Browser == nil {
		return nil, fmt.Errorf("Browser is required")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("Resolver is required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("Fetcher is required")
	}

	m := &Manager{
		platform:   cfg.Platform,
		searchPath: append([]string(nil), cfg.SearchPath...),
		baseURL:    cfg.BaseURL,
		browser:    cfg.Browser,
		resolver:   cfg.Resolver,
		fetcher:    cfg.Fetcher,
		fs:         cfg.Fs,
		runner:     cfg.Runner,
		extractor:  cfg.Extractor,
		logger:     cfg.Logger,
	}
	if m.baseURL == "" {
		m.baseURL = release.DefaultBaseURL
	}
	if m.fs == nil {
		m.fs = afero.NewOsFs()
	}
	if m.runner == nil {
		m.runner = command.NewExecRunner()
	}
	if m.extractor == nil {
		m.extractor = NewZipExtractor()
	}
	if m.logger == nil {
		m.logger = logging.Nop()
	}

	return m, nil
}

// DriverPath returns the canonical install location inside dir.
func (m *Manager) DriverPath(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve download dir: %w", err)
	}
	return filepath.Join(abs, m.platform.DriverFilename()), nil
}

// Download makes sure a chromedriver matching the installed browser exists in
// opts.Dir and returns where it is.
func (m *Manager) Download(ctx context.Context, opts DownloadOptions) (*Result, error) {
	startTime := time.Now()

	// Fail on unsupported platforms before touching the network
	if _, err := archiveID(m.platform); err != nil {
		return nil, err
	}

	rawVersion, err := m.browser.Version(ctx, opts.BrowserHint)
	if err != nil {
		return nil, fmt.Errorf("detect browser version: %w", err)
	}
	major, err := version.ExtractMajor(rawVersion)
	if err != nil {
		return nil, fmt.Errorf("parse browser version: %w", err)
	}

	target, err := m.resolver.Latest(ctx, major)
	if err != nil {
		return nil, err
	}
	m.logger.Info("chrome major version (installed)", "major", major)
	m.logger.Info("chromedriver version (to be downloaded)", "release", target.String())

	dest, err := m.DriverPath(opts.Dir)
	if err != nil {
		return nil, err
	}
	destDir := filepath.Dir(dest)
	filename := m.platform.DriverFilename()

	result := &Result{
		Path:           dest,
		Release:        target,
		BrowserVersion: rawVersion,
		BrowserMajor:   major,
		Verified:       true,
	}

	// Reuse a matching driver from the search path
	if found, ok := FindOnPath(m.fs, m.platform.OS, m.searchPath, filename); ok && MatchesVersion(ctx, m.runner, found, target) {
		m.logger.Info("chromedriver already installed", "path", found)
		result.Action = ActionReused

		if strings.EqualFold(found, dest) {
			result.Path = found
		} else {
			if err := m.fs.MkdirAll(destDir, 0o755); err != nil {
				return nil, fmt.Errorf("create download dir: %w", err)
			}
			if err := copyFile(m.fs, found, dest); err != nil {
				return nil, fmt.Errorf("copy %s: %w", found, err)
			}
			m.logger.Info("chromedriver copied", "from", found, "to", dest)
			result.Action = ActionCopied
		}

		result.DownloadTime = time.Since(startTime)
		return result, nil
	}

	if m.isFile(dest) && MatchesVersion(ctx, m.runner, dest, target) {
		m.logger.Info("chromedriver already installed", "path", dest)
		result.Action = ActionUpToDate
	} else {
		m.logger.Info("downloading chromedriver", "release", target.String())
		url, err := m.install(ctx, destDir, target, filename)
		if err != nil {
			return nil, err
		}
		result.Action = ActionDownloaded
		result.URL = url
	}

	if err := m.ensureExecutable(dest); err != nil {
		return nil, err
	}

	if result.Action == ActionDownloaded && !MatchesVersion(ctx, m.runner, dest, target) {
		m.logger.Warn("installed chromedriver did not report the expected version", "path", dest, "release", target.String())
		result.Verified = false
	}

	result.DownloadTime = time.Since(startTime)
	return result, nil
}

// install fetches the release archive and extracts the driver into destDir.
// It returns the archive URL.
func (m *Manager) install(ctx context.Context, destDir string, target version.Release, filename string) (string, error) {
	if err := m.fs.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	info, err := constructDownloadInfo(m.baseURL, target, m.platform)
	if err != nil {
		return "", fmt.Errorf("construct download info: %w", err)
	}

	archive, err := m.fetcher.Fetch(ctx, info.URL)
	if err != nil {
		return "", &DownloadError{URL: info.URL, Err: err}
	}

	extracted, err := m.extractor.Extract(m.fs, archive, destDir)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", info.URL, err)
	}

	extracted, err = flatten(m.fs, destDir, extracted, filename)
	if err != nil {
		return "", fmt.Errorf("flatten %s: %w", info.URL, err)
	}
	m.logger.Debug("archive extracted", "url", info.URL, "files", len(extracted))

	if !m.isFile(filepath.Join(destDir, filename)) {
		return "", fmt.Errorf("%w: %s in %s", ErrDriverMissing, filename, info.URL)
	}

	return info.URL, nil
}

// ensureExecutable adds the owner execute bit when the file has none.
func (m *Manager) ensureExecutable(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("stat driver: %w", err)
	}
	if platform.IsExecutable(info, m.platform.OS) {
		return nil
	}
	return SetExecutable(m.fs, path)
}

func (m *Manager) isFile(path string) bool {
	info, err := m.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// copyFile copies src to dst keeping the permission bits and modification time.
func copyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile is subject to umask and leaves existing modes untouched
	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return fs.Chtimes(dst, info.ModTime(), info.ModTime())
}
