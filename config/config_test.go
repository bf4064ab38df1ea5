package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bfvm.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log-level = "debug"
trace = true
unbuffered-output = true
trailing-newline = "never"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Trace)
	assert.True(t, cfg.UnbufferedOutput)
	assert.Equal(t, NewlineNever, cfg.TrailingNewline)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `trace = true`))
	require.NoError(t, err)
	assert.Equal(t, DefaultVMConfig.LogLevel, cfg.LogLevel)
	assert.Equal(t, NewlineAuto, cfg.TrailingNewline)
	assert.Empty(t, DefaultVMConfig.Path, "defaults must not be mutated")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `log-level = `))
	assert.ErrorContains(t, err, "parse error")

	_, err = Load(writeConfig(t, `log-level = "loud"`))
	assert.ErrorContains(t, err, "unknown log-level")

	_, err = Load(writeConfig(t, `trailing-newline = "sometimes"`))
	assert.ErrorContains(t, err, "unknown trailing-newline")
}

func TestCheckLevelCase(t *testing.T) {
	cfg := *DefaultVMConfig
	cfg.LogLevel = "INFO"
	assert.NoError(t, cfg.Check())
}

func TestString(t *testing.T) {
	banner := DefaultVMConfig.String()
	assert.Contains(t, banner, "defaults")
	assert.Contains(t, banner, "30000 cells")
	assert.Contains(t, banner, "buffered")
}
