package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	require.NoError(t, SetLevel("warning"))
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		_ = SetLevel("warning")
	})
	return buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t)
	log := NewLogger("[test]")

	log.Debugf("hidden %d", 1)
	log.Infof("hidden %d", 2)
	log.Warningf("shown %d", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 3")
	assert.Contains(t, buf.String(), "[test]")
	assert.False(t, IsDebug("[test]"))

	require.NoError(t, SetLevel("DEBUG"))
	log.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.True(t, IsDebug("[test]"))
}

func TestSetOutputKeepsLevel(t *testing.T) {
	captureLogs(t)
	require.NoError(t, SetLevel("debug"))

	buf := new(bytes.Buffer)
	SetOutput(buf)
	NewLogger("[test]").Debugf("after redirect")
	assert.Contains(t, buf.String(), "after redirect")
}

func TestSetModuleLevel(t *testing.T) {
	buf := captureLogs(t)
	require.NoError(t, SetModuleLevel("[loud]", "debug"))

	NewLogger("[loud]").Debugf("loud debug")
	NewLogger("[quiet]").Debugf("quiet debug")
	assert.Contains(t, buf.String(), "loud debug")
	assert.NotContains(t, buf.String(), "quiet debug")
	assert.True(t, IsDebug("[loud]"))
	assert.False(t, IsDebug("[quiet]"))
}

func TestInvalidLevel(t *testing.T) {
	captureLogs(t)
	assert.ErrorContains(t, SetLevel("shout"), "logger:")
	assert.ErrorContains(t, SetModuleLevel("[test]", "shout"), "logger:")
	assert.False(t, IsDebug("[test]"), "level unchanged after a bad name")
}
