package platform

import (
	"os"
	"testing"

	"github.com/spf13/afero"
)

func TestLookPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	write := func(path string, mode uint32) {
		t.Helper()
		if err := afero.WriteFile(fs, path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := fs.Chmod(path, os.FileMode(mode)); err != nil {
			t.Fatal(err)
		}
	}
	write("/opt/a/google-chrome", 0o644)
	write("/opt/b/google-chrome", 0o755)

	tests := []struct {
		name      string
		goos      string
		path      []string
		want      string
		wantFound bool
	}{
		{"skips_non_executable", "linux", []string{"/opt/a", "/opt/b"}, "/opt/b/google-chrome", true},
		{"windows_any_regular_file", "windows", []string{"/opt/a", "/opt/b"}, "/opt/a/google-chrome", true},
		{"not_on_path", "linux", []string{"/usr/bin"}, "", false},
		{"nil_path", "linux", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := LookPath(fs, tt.goos, tt.path, "google-chrome")
			if found != tt.wantFound || got != tt.want {
				t.Errorf("LookPath() = %q, %v; want %q, %v", got, found, tt.want, tt.wantFound)
			}
		})
	}
}
