//go:build go1.18

package config

import (
	"context"
	"testing"
)

func FuzzParser_ParseString(f *testing.F) {
	f.Add(`driversync = { download_dir = "./bin" }`)
	f.Add(`driversync = { verbose = true, base_url = "https://mirror.example" }`)
	f.Add(`driversync = 42`)

	parser := NewParser(nil)

	f.Fuzz(func(t *testing.T, luaCode string) {
		cfg, err := parser.ParseString(context.Background(), luaCode)
		if err == nil && cfg == nil {
			t.Errorf("ParseString(%q) returned nil config without error", luaCode)
		}
	})
}
