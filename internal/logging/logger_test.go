package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/bundlekit/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "bundlekit.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)

	l.Info("to file")
	l.Success("built %d outputs", 3)
	l.Debug(false, "hidden")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO] to file")
	assert.Contains(t, string(b), "[SUCCESS] built 3 outputs")
	assert.NotContains(t, string(b), "hidden")
}

func TestLevelRouting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l, err := newLogger("", false, zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))
	require.NoError(t, err)

	l.Info("info line")
	l.Warn("Could not find </head> tag in: %s", "a.html")
	l.Error("Error processing file %s: %s", "b.html", "permission denied")
	l.Debug(true, "debug line")
	require.NoError(t, l.Close())

	out := stdout.String()
	assert.Contains(t, out, "[INFO] info line")
	assert.Contains(t, out, "[WARN] Could not find </head> tag in: a.html")
	assert.Contains(t, out, "[DEBUG] debug line")
	assert.NotContains(t, out, "b.html")
	assert.Contains(t, stderr.String(), "[ERROR] Error processing file b.html: permission denied")
}
