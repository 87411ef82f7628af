package binary

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
	"github.com/ZebulonRouseFrantzich/driversync/internal/version"
)

// archiveID maps a platform to the chromedriver archive suffix.
// Windows always gets the 32-bit build: no native 64-bit Windows archive is
// published on the legacy storage endpoint.
func archiveID(info *platform.Info) (string, error) {
	if info == nil {
		return "", fmt.Errorf("platform info is required")
	}

	switch {
	case info.IsLinux() && info.Is64Bit():
		return "linux64", nil
	case info.IsMacOS():
		if info.IsARM64() {
			return "mac64_m1", nil
		}
		return "mac64", nil
	case info.IsWindows():
		return "win32", nil
	default:
		arch := info.MachineArch
		if arch == "" {
			arch = info.Arch
		}
		return "", &UnsupportedPlatformError{OS: info.OS, Arch: arch}
	}
}

// ArchiveURL builds the archive URL for release on the given platform.
// Pattern: {base}/{release}/chromedriver_{platform}.zip
func ArchiveURL(baseURL string, release version.Release, info *platform.Info) (string, error) {
	id, err := archiveID(info)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/chromedriver_%s.zip", strings.TrimRight(baseURL, "/"), release, id), nil
}

// constructDownloadInfo builds the download metadata for release.
func constructDownloadInfo(baseURL string, release version.Release, info *platform.Info) (*DownloadInfo, error) {
	if release.IsZero() {
		return nil, fmt.Errorf("release is required")
	}

	id, err := archiveID(info)
	if err != nil {
		return nil, err
	}

	url, err := ArchiveURL(baseURL, release, info)
	if err != nil {
		return nil, err
	}

	return &DownloadInfo{
		Release:    release,
		OS:         info.OS,
		Arch:       info.Arch,
		PlatformID: id,
		URL:        url,
	}, nil
}
