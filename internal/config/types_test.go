package config

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantField string
	}{
		{name: "empty", config: Config{}},
		{name: "https_base_url", config: Config{BaseURL: "https://chromedriver.storage.googleapis.com"}},
		{name: "http_base_url_with_path", config: Config{BaseURL: "http://localhost:8080/mirror/"}},
		{name: "ftp_base_url", config: Config{BaseURL: "ftp://mirror.example"}, wantField: "base_url"},
		{name: "no_host", config: Config{BaseURL: "https:///path"}, wantField: "base_url"},
		{name: "query", config: Config{BaseURL: "https://mirror.example/?token=x"}, wantField: "base_url"},
		{name: "relative", config: Config{BaseURL: "mirror.example"}, wantField: "base_url"},
		{name: "nul_in_dir", config: Config{DownloadDir: "bin\x00"}, wantField: "download_dir"},
		{name: "nul_in_chrome", config: Config{Chrome: "chrome\x00"}, wantField: "chrome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Error() = %q, want field name", err.Error())
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	if got := (&ValidationError{Message: "bad"}).Error(); got != "config validation failed: bad" {
		t.Errorf("Error() = %q", got)
	}
}
