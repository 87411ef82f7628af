package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// archAliases maps kernel and toolchain architecture names to GOARCH names.
var archAliases = map[string]string{
	"x86_64":  "amd64",
	"x64":     "amd64",
	"aarch64": "arm64",
	"arm64e":  "arm64",
	"i386":    "386",
	"i686":    "386",
	"x86":     "386",
}

var wideArchs = map[string]bool{
	"amd64":    true,
	"arm64":    true,
	"ppc64":    true,
	"ppc64le":  true,
	"s390x":    true,
	"riscv64":  true,
	"mips64":   true,
	"mips64le": true,
	"loong64":  true,
}

// normalizeArch converts an architecture name to its GOARCH spelling and
// reports whether it is a 64-bit architecture.
func normalizeArch(arch string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(arch))
	if alias, ok := archAliases[normalized]; ok {
		normalized = alias
	}
	return normalized, wideArchs[normalized]
}

// DriverFilename returns the chromedriver executable name for goos.
func DriverFilename(goos string) string {
	if goos == "windows" {
		return "chromedriver.exe"
	}
	return "chromedriver"
}

// SplitSearchPath splits a PATH-style value into its directories.
// An empty entry stands for the current directory, as it does for the shell.
// An empty value yields no directories.
func SplitSearchPath(value string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(value) {
		if dir == "" {
			dir = "."
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

// SearchPathFromEnv reads the process PATH. The environment is never modified.
func SearchPathFromEnv() []string {
	value, ok := os.LookupEnv("PATH")
	if !ok {
		return nil
	}
	return SplitSearchPath(value)
}
