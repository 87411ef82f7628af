// Package release resolves a browser major version to the chromedriver
// release that supports it.
package release

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZebulonRouseFrantzich/driversync/internal/fetch"
	"github.com/ZebulonRouseFrantzich/driversync/internal/version"
)

// DefaultBaseURL is the chromedriver storage endpoint serving release metadata and archives.
const DefaultBaseURL = "https://chromedriver.storage.googleapis.com"

// LookupError reports a failed release metadata request.
type LookupError struct {
	URL string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("failed to find release information: %s: %v", e.URL, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Resolver looks up driver releases.
type Resolver struct {
	baseURL string
	fetcher fetch.Fetcher
}

// NewResolver creates a resolver against baseURL (DefaultBaseURL when empty).
func NewResolver(baseURL string, fetcher fetch.Fetcher) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
	}
}

// URL returns the metadata URL for major. A major of 0 or less asks for the
// latest release overall.
func (r *Resolver) URL(major int) string {
	url := r.baseURL + "/LATEST_RELEASE"
	if major > 0 {
		url += "_" + strconv.Itoa(major)
	}
	return url
}

// Latest returns the newest driver release for the browser major version.
// The response body is trimmed and returned as-is.
func (r *Resolver) Latest(ctx context.Context, major int) (version.Release, error) {
	url := r.URL(major)

	body, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", &LookupError{URL: url, Err: err}
	}

	return version.Release(strings.TrimSpace(string(body))), nil
}
