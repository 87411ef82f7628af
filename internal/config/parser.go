package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
	fs       afero.Fs
}

// ParserOption customizes a Parser.
type ParserOption func(*Parser)

// WithFs sets the filesystem ParseFile reads from (default: the OS filesystem).
func WithFs(fs afero.Fs) ParserOption {
	return func(p *Parser) {
		p.fs = fs
	}
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector leaves the platform table undefined.
func NewParser(detector platform.Detector, opts ...ParserOption) *Parser {
	p := &Parser{detector: detector, fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads and parses the config file at path. A relative
// download_dir is resolved against the file's directory.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("read config: %s is a directory", path)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("read config: %s is larger than %d bytes", path, maxConfigSize)
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) && parseErr.File == "" {
			parseErr.File = path
		}
		return nil, err
	}

	if cfg.DownloadDir != "" && !filepath.IsAbs(cfg.DownloadDir) {
		cfg.DownloadDir = filepath.Join(filepath.Dir(path), cfg.DownloadDir)
	}
	return cfg, nil
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	// Stops runaway scripts when ctx is cancelled
	L.SetContext(ctx)

	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("evaluate config: %w", ctxErr)
		}
		return nil, &ParseError{
			Message: "Lua error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	File    string // Config file, empty for in-memory sources
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig reads the global "driversync" table. A config that never
// defines it yields an empty Config.
func extractConfig(L *lua.LState) (*Config, error) {
	root := L.GetGlobal(luaGlobalDriversync)
	if root.Type() == lua.LTNil {
		return &Config{}, nil
	}
	table, ok := root.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid '%s' table", luaGlobalDriversync),
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	if unknown := unknownFields(table); len(unknown) > 0 {
		return nil, &ParseError{
			Message: "unknown config field",
			Detail:  strings.Join(unknown, ", "),
		}
	}

	config := &Config{}
	var err error

	if config.DownloadDir, err = optionalString(table, luaFieldDownloadDir); err != nil {
		return nil, err
	}
	if config.Chrome, err = optionalString(table, luaFieldChrome); err != nil {
		return nil, err
	}
	if config.BaseURL, err = optionalString(table, luaFieldBaseURL); err != nil {
		return nil, err
	}

	switch v := table.RawGetString(luaFieldVerbose).(type) {
	case *lua.LNilType:
	case lua.LBool:
		config.Verbose = bool(v)
	default:
		return nil, fieldTypeError(luaFieldVerbose, "boolean", v)
	}

	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

// optionalString returns the string field name, "" when it is nil
// (e.g. from a platform conditional like: platform.is_linux and "x" or nil).
func optionalString(table *lua.LTable, name string) (string, error) {
	value := table.RawGetString(name)
	switch value.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return value.String(), nil
	default:
		return "", fieldTypeError(name, "string", value)
	}
}

func fieldTypeError(name, want string, got lua.LValue) error {
	return &ParseError{
		Message: fmt.Sprintf("invalid value for '%s'", name),
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

func unknownFields(table *lua.LTable) []string {
	known := map[string]bool{
		luaFieldDownloadDir: true,
		luaFieldChrome:      true,
		luaFieldBaseURL:     true,
		luaFieldVerbose:     true,
	}

	var unknown []string
	table.ForEach(func(key, _ lua.LValue) {
		if s, ok := key.(lua.LString); ok && known[string(s)] {
			return
		}
		unknown = append(unknown, key.String())
	})
	sort.Strings(unknown)
	return unknown
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}

	prefix := parseErr.Message
	if parseErr.File != "" {
		prefix = parseErr.File + ": " + prefix
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", prefix, parseErr.Detail)
	}

	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", prefix, detail)
}
