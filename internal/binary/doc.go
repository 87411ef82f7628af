// Package binary acquires the chromedriver binary that matches the installed
// browser.
//
// # Acquisition
//
// Manager.Download reconciles three facts: the installed browser's major
// version, the driver release the metadata endpoint maps it to, and whatever
// chromedriver already exists on disk. It proceeds in this order:
//
//  1. A chromedriver on the search path that reports the target release is
//     reused, and copied into the download directory if it lives elsewhere.
//  2. A chromedriver already in the download directory that reports the
//     target release is kept.
//  3. Otherwise the release archive is fetched and extracted into the
//     download directory. Archives that wrap the binary in a folder are
//     flattened one level.
//
// The installed file is always left with an executable mode.
//
// A binary whose version cannot be read (it fails to start, exits non-zero,
// prints nothing recognizable) is treated as a mismatch, never as an error,
// so an ambiguous install is replaced rather than trusted.
//
// # Usage
//
//	mgr, err := binary.NewManager(binary.Config{
//	    Platform:   info,
//	    SearchPath: platform.SearchPathFromEnv(),
//	    Browser:    locator,
//	    Resolver:   release.NewResolver("", client),
//	    Fetcher:    client,
//	})
//	if err != nil {
//	    return err
//	}
//
//	result, err := mgr.Download(ctx, binary.DownloadOptions{Dir: "./bin"})
//
// # Architecture
//
// The package is organized into several components:
//   - Manager: orchestration of detect, resolve, reuse, fetch, install
//   - FindOnPath: search-path lookup of an existing executable
//   - MatchesVersion: compares a binary's -v output with a release
//   - ZipExtractor: archive extraction onto an afero filesystem
//   - ArchiveURL: platform-specific archive naming
package binary
