package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config is the parsed content of a driversync config file.
type Config struct {
	// DownloadDir is where the driver is installed.
	DownloadDir string `json:"download_dir,omitempty"`

	// Chrome is an explicit browser executable used for version detection.
	Chrome string `json:"chrome,omitempty"`

	// BaseURL overrides the release and archive endpoint.
	BaseURL string `json:"base_url,omitempty"`

	// Verbose enables progress logging.
	Verbose bool `json:"verbose,omitempty"`
}

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if strings.ContainsRune(c.DownloadDir, 0) {
		return &ValidationError{Field: luaFieldDownloadDir, Message: "path contains a NUL byte"}
	}
	if strings.ContainsRune(c.Chrome, 0) {
		return &ValidationError{Field: luaFieldChrome, Message: "path contains a NUL byte"}
	}

	if c.BaseURL != "" {
		if err := validateBaseURL(c.BaseURL); err != nil {
			return &ValidationError{Field: luaFieldBaseURL, Message: err.Error()}
		}
	}

	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// validateBaseURL accepts absolute http(s) URLs without query or fragment,
// since path segments are appended to it.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must use https:// or http:// scheme (got: %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("URL must not have a query or fragment: %s", raw)
	}

	return nil
}
