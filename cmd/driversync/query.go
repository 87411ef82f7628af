package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ZebulonRouseFrantzich/driversync"
)

const queryTimeout = time.Minute

// runPath handles the `driversync path` subcommand
func runPath(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("path", stderr)
	dir := fs.StringP("dir", "d", ".", "download directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	path, err := driversync.DriverPath(*dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}

// runBrowserVersion handles the `driversync browser-version` subcommand
func runBrowserVersion(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("browser-version", stderr)
	chrome := fs.String("chrome", "", "browser executable to query")
	majorOnly := fs.Bool("major", false, "print only the major version")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	raw, major, err := driversync.BrowserVersion(ctx, driversync.Options{BrowserHint: *chrome})
	if err != nil {
		return err
	}

	if *majorOnly {
		fmt.Fprintln(stdout, major)
		return nil
	}
	fmt.Fprintf(stdout, "%s\nmajor: %d\n", raw, major)
	return nil
}

// runRelease handles the `driversync release` subcommand
func runRelease(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("release", stderr)
	major := fs.IntP("major", "m", 0, "browser major version (0 for the newest release)")
	baseURL := fs.String("base-url", driversync.DefaultBaseURL, "release endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rel, err := driversync.LatestRelease(ctx, driversync.Options{BaseURL: *baseURL, UserAgent: userAgent()}, *major)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, rel)
	return nil
}
