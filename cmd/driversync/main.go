package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func userAgent() string {
	return "driversync/" + Version
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return 0
	}

	var err error
	switch args[0] {
	case "--version", "version":
		fmt.Fprintf(stdout, "driversync %s\n", Version)
		return 0
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "install":
		err = runInstall(args[1:], stdout, stderr)
	case "path":
		err = runPath(args[1:], stdout, stderr)
	case "browser-version":
		err = runBrowserVersion(args[1:], stdout, stderr)
	case "release":
		err = runRelease(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Error: unknown command: %s\n", args[0])
		printUsage(stderr)
		return 1
	}

	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "driversync keeps chromedriver in sync with the installed Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  driversync install [options]          Install the matching chromedriver")
	fmt.Fprintln(w, "  driversync path [--dir DIR]           Print where chromedriver is installed")
	fmt.Fprintln(w, "  driversync browser-version [options]  Print the detected browser version")
	fmt.Fprintln(w, "  driversync release [--major N]        Print the driver release for a major version")
	fmt.Fprintln(w, "  driversync --version                  Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'driversync <command> --help' for command options.")
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: driversync %s [options]\n\nOptions:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// noArgs rejects positional arguments left after flag parsing.
func noArgs(fs *pflag.FlagSet) error {
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments: %v", fs.Name(), fs.Args())
	}
	return nil
}
