package platform

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		wantWide bool
	}{
		{"amd64", "amd64", true},
		{"x86_64", "amd64", true},
		{"aarch64", "arm64", true},
		{"ARM64", "arm64", true},
		{"i686", "386", false},
		{"arm", "arm", false},
		{"riscv64", "riscv64", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, wide := normalizeArch(tt.input)
			if got != tt.want || wide != tt.wantWide {
				t.Errorf("normalizeArch(%q) = %q, %v; want %q, %v", tt.input, got, wide, tt.want, tt.wantWide)
			}
		})
	}
}

func TestSplitSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)
	value := strings.Join([]string{"/usr/local/bin", "", "/usr/bin", ""}, sep)

	got := SplitSearchPath(value)
	want := []string{"/usr/local/bin", ".", "/usr/bin", "."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSearchPath(%q) = %v, want %v", value, got, want)
	}

	if got := SplitSearchPath(""); len(got) != 0 {
		t.Errorf("SplitSearchPath(\"\") = %v, want empty", got)
	}
}

func TestSearchPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+filepath.Join(dir, "bin"))

	got := SearchPathFromEnv()
	if len(got) != 2 || got[0] != dir {
		t.Errorf("SearchPathFromEnv() = %v", got)
	}

	if os.Getenv("PATH") != dir+string(os.PathListSeparator)+filepath.Join(dir, "bin") {
		t.Error("SearchPathFromEnv() must not modify PATH")
	}
}
