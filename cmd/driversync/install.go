package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ZebulonRouseFrantzich/driversync"
	"github.com/ZebulonRouseFrantzich/driversync/internal/config"
	"github.com/ZebulonRouseFrantzich/driversync/internal/logging"
	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
)

type installOptions struct {
	dir        string
	chrome     string
	configFile string
	baseURL    string
	verbose    bool
	timeout    time.Duration
}

// runInstall handles the `driversync install` subcommand
func runInstall(args []string, stdout, stderr io.Writer) error {
	var opts installOptions

	fs := newFlagSet("install", stderr)
	fs.StringVarP(&opts.dir, "dir", "d", ".", "directory to install chromedriver into")
	fs.StringVar(&opts.chrome, "chrome", "", "browser executable used for version detection")
	fs.StringVarP(&opts.configFile, "config", "c", "", "Lua config file")
	fs.StringVar(&opts.baseURL, "base-url", driversync.DefaultBaseURL, "release and archive endpoint")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	fs.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "give up after this long")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if opts.configFile != "" {
		cfg, err := config.NewParser(platform.NewDetector()).ParseFile(ctx, opts.configFile)
		if err != nil {
			return fmt.Errorf("load config: %s", config.FormatError(err, opts.verbose))
		}
		opts.applyConfig(cfg, fs.Changed)
	}

	logger := logging.New(stderr, opts.verbose)
	result, err := driversync.Install(ctx, driversync.Options{
		DownloadDir: opts.dir,
		BrowserHint: opts.chrome,
		BaseURL:     opts.baseURL,
		UserAgent:   userAgent(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Info("chromedriver ready",
		"path", result.Path,
		"release", result.Release.String(),
		"action", result.Action.String(),
		"elapsed", result.DownloadTime.Round(time.Millisecond),
	)
	fmt.Fprintln(stdout, result.Path)
	return nil
}

// applyConfig fills every option not set on the command line from cfg.
func (o *installOptions) applyConfig(cfg *config.Config, changed func(string) bool) {
	if cfg.DownloadDir != "" && !changed("dir") {
		o.dir = cfg.DownloadDir
	}
	if cfg.Chrome != "" && !changed("chrome") {
		o.chrome = cfg.Chrome
	}
	if cfg.BaseURL != "" && !changed("base-url") {
		o.baseURL = cfg.BaseURL
	}
	if cfg.Verbose && !changed("verbose") {
		o.verbose = true
	}
}
