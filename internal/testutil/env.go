// Package testutil provides helpers for testing driversync in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

// SetupTestEnv points PATH at a fresh, empty directory and returns it.
// Tests that read the process search path therefore never see a chromedriver
// or browser installed on the developer machine. t.Setenv restores PATH.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o750); err != nil {
		t.Fatalf("failed to create test bin directory %s: %v", binDir, err)
	}
	t.Setenv("PATH", binDir)

	return binDir
}

// WriteExecutable writes a shell script named name into dir that prints
// output and exits with code. It skips the test on Windows.
func WriteExecutable(t *testing.T, dir, name, output string, code int) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script executables are not supported on windows")
	}

	script := "#!/bin/sh\n"
	if output != "" {
		script += "printf '%s\\n' '" + output + "'\n"
	}
	script += "exit " + strconv.Itoa(code) + "\n"

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write executable %s: %v", path, err)
	}
	return path
}
