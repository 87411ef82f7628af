package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Info("chrome major version (installed)", "major", 114)
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "chrome major version (installed)")
	assert.Contains(t, out, "major=114")
	assert.NotContains(t, out, "hidden")
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Info("downloading")
	assert.Empty(t, buf.String())

	log.Warn("careful", "path", "/tmp/chromedriver")
	assert.Contains(t, buf.String(), "careful")
}

func TestFromLogrusFields(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	FromLogrus(l).Error("boom", "url", "https://example.invalid", "dangling")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "https://example.invalid", entry.Data["url"])
	assert.Equal(t, "dangling", entry.Data["!BADKEY"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
}
