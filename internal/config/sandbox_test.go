package config

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/driversync/internal/platform"
)

func TestSandboxLuaVM(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
		errMsg  string
	}{
		// Safe operations that should work
		{
			name:    "string operations allowed",
			code:    `x = string.upper("hello")`,
			wantErr: false,
		},
		{
			name:    "table operations allowed",
			code:    `t = {1, 2, 3}; table.insert(t, 4)`,
			wantErr: false,
		},
		{
			name:    "math operations allowed",
			code:    `x = math.sqrt(16)`,
			wantErr: false,
		},
		{
			name:    "basic functions allowed",
			code:    `x = type("hello"); y = tostring(123); z = tonumber("456")`,
			wantErr: false,
		},
		{
			name:    "pairs and ipairs allowed",
			code:    `t = {a=1, b=2}; for k,v in pairs(t) do end`,
			wantErr: false,
		},

		// Dangerous operations that should fail
		{
			name:    "os.execute blocked",
			code:    `os.execute("ls")`,
			wantErr: true,
			errMsg:  "attempt to index",
		},
		{
			name:    "os.getenv blocked",
			code:    `x = os.getenv("PATH")`,
			wantErr: true,
			errMsg:  "attempt to index",
		},
		{
			name:    "io.open blocked",
			code:    `f = io.open("/etc/passwd")`,
			wantErr: true,
			errMsg:  "attempt to index",
		},
		{
			name:    "io.popen blocked",
			code:    `f = io.popen("ls")`,
			wantErr: true,
			errMsg:  "attempt to index",
		},
		{
			name:    "require blocked",
			code:    `socket = require("socket")`,
			wantErr: true,
			errMsg:  "attempt to call",
		},
		{
			name:    "dofile blocked",
			code:    `dofile("/tmp/evil.lua")`,
			wantErr: true,
			errMsg:  "attempt to call",
		},
		{
			name:    "loadfile blocked",
			code:    `f = loadfile("/tmp/evil.lua")`,
			wantErr: true,
			errMsg:  "attempt to call",
		},
		{
			name:    "load blocked",
			code:    `f = load("return 1+1")`,
			wantErr: true,
			errMsg:  "attempt to call",
		},
		{
			name:    "loadstring blocked",
			code:    `f = loadstring("return 1+1")`,
			wantErr: true,
			errMsg:  "attempt to call",
		},
		{
			name:    "package blocked",
			code:    `x = package.path`,
			wantErr: true,
			errMsg:  "attempt to index",
		},
		{
			name:    "setmetatable blocked",
			code:    `setmetatable({}, {})`,
			wantErr: true,
			errMsg:  "attempt to call",
		},
		{
			name:    "rawset blocked",
			code:    `rawset({}, "k", "v")`,
			wantErr: true,
			errMsg:  "attempt to call",
		},
		{
			name:    "debug blocked",
			code:    `debug.getinfo(1)`,
			wantErr: true,
			errMsg:  "attempt to index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L := newSandboxedVM()
			defer L.Close()

			err := L.DoString(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("sandboxLuaVM() with code %q: error = %v, wantErr %v", tt.code, err, tt.wantErr)
				return
			}

			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("sandboxLuaVM() with code %q: error = %v, want substring %q", tt.code, err, tt.errMsg)
				}
			}
		})
	}
}

func TestNewSandboxedVM(t *testing.T) {
	L := newSandboxedVM()
	defer L.Close()

	// Verify it's sandboxed by checking os is nil
	os := L.GetGlobal("os")
	if os.Type() != lua.LTNil {
		t.Errorf("newSandboxedVM() os = %v, want nil", os.Type())
	}

	// Verify string is available
	str := L.GetGlobal("string")
	if str.Type() != lua.LTTable {
		t.Errorf("newSandboxedVM() string = %v, want table", str.Type())
	}
}

func TestSandbox_CannotRewritePlatformTable(t *testing.T) {
	L := newSandboxedVM()
	defer L.Close()

	if err := platform.InjectPlatformTable(L, &platform.Info{OS: "linux", Arch: "amd64"}); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	attempts := []string{
		`platform.os = "windows"`,
		`getmetatable(platform).__index = {}`,
		`rawset(platform, "os", "windows")`,
	}
	for _, code := range attempts {
		if err := L.DoString(code); err == nil {
			t.Errorf("DoString(%q) succeeded, want error", code)
		}
	}

	if err := L.DoString(`result = platform.os`); err != nil {
		t.Fatalf("reading platform.os failed: %v", err)
	}
	if got := L.GetGlobal("result").String(); got != "linux" {
		t.Errorf("platform.os = %q, want linux", got)
	}
}
