// Package driversync keeps a chromedriver binary in sync with the locally
// installed Chrome or Chromium.
//
// Download detects the browser's major version, resolves the newest matching
// driver release and makes sure that release is installed in the download
// directory. A matching driver already on the search path is reused (and
// copied into place if needed); a matching driver already in the download
// directory is left alone. Otherwise the release archive is fetched,
// extracted and made executable.
//
//	path, err := driversync.Download(ctx, driversync.Options{DownloadDir: "./bin"})
//	if err != nil {
//		log.Fatal(err)
//	}
package driversync

import (
	"context"
	"fmt"
	"os"

	"github.com/ZebulonRouseFrantzich/driversync/internal/binary"
	"github.com/ZebulonRouseFrantzich/driversync/internal/browser"
	"github.com/ZebulonRouseFrantzich/driversync/internal/fetch"
	"github.com/ZebulonRouseFrantzich/driversync/internal/logging"
	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
	"github.com/ZebulonRouseFrantzich/driversync/internal/release"
	"github.com/ZebulonRouseFrantzich/driversync/internal/version"
)

// DefaultBaseURL is the chromedriver release and archive endpoint.
const DefaultBaseURL = release.DefaultBaseURL

// Errors returned by Download, for use with errors.As and errors.Is.
type (
	BrowserNotFoundError     = browser.NotFoundError
	VersionParseError        = version.ParseError
	ReleaseLookupError       = release.LookupError
	DownloadError            = binary.DownloadError
	UnsupportedPlatformError = binary.UnsupportedPlatformError
)

// ErrDriverMissing is returned when a downloaded archive has no driver binary.
var ErrDriverMissing = binary.ErrDriverMissing

// Logger receives progress messages as key/value pairs.
type Logger = logging.Logger

// Result describes a completed Install.
type Result = binary.Result

// Options configures Download and Install. The zero value installs into the
// current directory using the process PATH.
type Options struct {
	// DownloadDir is where the driver is installed. Default ".".
	DownloadDir string

	// BrowserHint is an explicit browser executable, e.g. a portable Chrome.
	BrowserHint string

	// Verbose logs progress to stderr when Logger is nil.
	Verbose bool

	// BaseURL overrides DefaultBaseURL.
	BaseURL string

	// SearchPath lists directories scanned for an existing driver and for
	// browser executables given by bare name. Nil means the process PATH; an
	// empty non-nil slice disables the scan.
	SearchPath []string

	// UserAgent overrides the User-Agent header of release and archive
	// requests.
	UserAgent string

	// Logger overrides the stderr logger.
	Logger Logger
}

// Download makes sure a chromedriver matching the installed browser exists in
// opts.DownloadDir and returns its path.
func Download(ctx context.Context, opts Options) (string, error) {
	result, err := Install(ctx, opts)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}

// Install is Download with the full outcome: the release, the detected
// browser version and whether anything was downloaded.
func Install(ctx context.Context, opts Options) (*Result, error) {
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return nil, err
	}

	manager, err := newManager(info, opts)
	if err != nil {
		return nil, err
	}

	return manager.Download(ctx, binary.DownloadOptions{
		Dir:         opts.DownloadDir,
		BrowserHint: opts.BrowserHint,
	})
}

// DriverPath returns where Download installs the driver for downloadDir on
// the running platform, without touching the filesystem or network.
func DriverPath(downloadDir string) (string, error) {
	info, err := platform.NewDetector().Detect(context.Background())
	if err != nil {
		return "", err
	}

	manager, err := newManager(info, Options{})
	if err != nil {
		return "", err
	}
	return manager.DriverPath(downloadDir)
}

// BrowserVersion returns the raw version string of the installed browser and
// its major version. Only opts.BrowserHint, opts.SearchPath and opts.Logger
// are used.
func BrowserVersion(ctx context.Context, opts Options) (string, int, error) {
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return "", 0, err
	}

	locator, err := newLocator(info, opts, opts.Logger)
	if err != nil {
		return "", 0, err
	}

	raw, err := locator.Version(ctx, opts.BrowserHint)
	if err != nil {
		return "", 0, err
	}
	major, err := version.ExtractMajor(raw)
	if err != nil {
		return raw, 0, err
	}
	return raw, major, nil
}

// LatestRelease returns the newest driver release for a browser major
// version. A major of zero or less asks for the newest release overall.
// Only opts.BaseURL and opts.UserAgent are used.
func LatestRelease(ctx context.Context, opts Options, major int) (string, error) {
	rel, err := release.NewResolver(baseURL(opts), newFetcher(opts)).Latest(ctx, major)
	if err != nil {
		return "", err
	}
	return rel.String(), nil
}

func newManager(info *platform.Info, opts Options) (*binary.Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(os.Stderr, opts.Verbose)
	}

	locator, err := newLocator(info, opts, logger)
	if err != nil {
		return nil, err
	}

	fetcher := newFetcher(opts)

	return binary.NewManager(binary.Config{
		Platform:   info,
		SearchPath: searchPath(opts),
		BaseURL:    baseURL(opts),
		Browser:    locator,
		Resolver:   release.NewResolver(baseURL(opts), fetcher),
		Fetcher:    fetcher,
		Logger:     logger,
	})
}

func newLocator(info *platform.Info, opts Options, logger Logger) (*browser.Locator, error) {
	locator, err := browser.NewLocator(browser.Config{
		Platform:   info,
		Logger:     logger,
		SearchPath: searchPath(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("create browser locator: %w", err)
	}
	return locator, nil
}

func newFetcher(opts Options) *fetch.Client {
	if opts.UserAgent == "" {
		return fetch.NewClient()
	}
	return fetch.NewClient(fetch.WithUserAgent(opts.UserAgent))
}

func searchPath(opts Options) []string {
	if opts.SearchPath == nil {
		return platform.SearchPathFromEnv()
	}
	return opts.SearchPath
}

func baseURL(opts Options) string {
	if opts.BaseURL == "" {
		return DefaultBaseURL
	}
	return opts.BaseURL
}
