// Package fetch downloads HTTP resources for driversync.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.bug.st/downloader/v2"
)

const (
	// DefaultTimeout bounds a whole request, including the body transfer.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "driversync"
)

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StatusError reports a response with a status other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status code: %d", e.URL, e.StatusCode)
}

// Client implements Fetcher on top of go.bug.st/downloader, staging each
// body in a temporary file.
type Client struct {
	httpClient http.Client
	tempDir    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The User-Agent header
// is still added to every request.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = *c
	}
}

// WithTempDir sets where response bodies are staged. Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(cl *Client) {
		cl.tempDir = dir
	}
}

// WithUserAgent sets the User-Agent header. Defaults to DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// NewClient creates a new fetch client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	c.httpClient.Transport = &userAgentTransport{base: base, userAgent: c.userAgent}

	return c
}

// Fetch downloads url and returns its body. Anything but 200 OK is an error;
// there are no retries.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	tmp, err := os.CreateTemp(c.tempDir, "driversync-fetch-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	// Start from an empty staging file so the downloader never resumes.
	if err := os.Remove(tmpPath); err != nil {
		return nil, fmt.Errorf("prepare temp file: %w", err)
	}
	defer os.Remove(tmpPath)

	d, err := downloader.DownloadWithConfigAndContext(ctx, tmpPath, url, downloader.Config{
		HttpClient: c.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	if d.Resp.StatusCode != http.StatusOK {
		_ = d.Close()
		return nil, &StatusError{URL: url, StatusCode: d.Resp.StatusCode}
	}

	if err := d.Run(); err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", url, err)
	}

	body, err := os.ReadFile(filepath.Clean(tmpPath))
	if os.IsNotExist(err) {
		// Zero-length bodies are never written to disk
		return []byte{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read downloaded body: %w", err)
	}
	return body, nil
}

// userAgentTransport sets the User-Agent header on outgoing requests.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}
