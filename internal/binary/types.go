package binary

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZebulonRouseFrantzich/driversync/internal/version"
)

// ErrDriverMissing is returned when an extracted archive does not contain the driver.
var ErrDriverMissing = errors.New("driver binary not found in archive")

// Action records how Download satisfied the request.
type Action string

const (
	// ActionReused means the binary found on the search path already was the destination.
	ActionReused Action = "reused"
	// ActionCopied means a matching binary on the search path was copied to the destination.
	ActionCopied Action = "copied"
	// ActionUpToDate means the destination already held the matching binary.
	ActionUpToDate Action = "up-to-date"
	// ActionDownloaded means the release archive was fetched and installed.
	ActionDownloaded Action = "downloaded"
)

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// DownloadOptions configures a single acquisition.
type DownloadOptions struct {
	// Dir is the directory the driver is installed into (default ".").
	Dir string
	// BrowserHint is an explicit browser executable path, e.g. a portable
	// Chrome on Windows. Optional.
	BrowserHint string
}

// Result describes a completed acquisition.
type Result struct {
	Path           string
	Release        version.Release
	BrowserVersion string
	BrowserMajor   int
	Action         Action
	// URL is the archive URL, set only when Action is ActionDownloaded.
	URL string
	// Verified is false when the installed binary could not report its version.
	Verified     bool
	DownloadTime time.Duration
}

// DownloadInfo contains metadata needed to download a driver archive.
type DownloadInfo struct {
	Release    version.Release
	OS         string // "linux", "darwin", "windows"
	Arch       string // "amd64", "arm64", ...
	PlatformID string // "linux64", "mac64", "mac64_m1", "win32"
	URL        string
}

// DownloadError reports a failed archive download.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download chromedriver archive: %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// UnsupportedPlatformError is returned for platforms without a chromedriver build.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("no chromedriver download available for %s/%s", e.OS, e.Arch)
}
