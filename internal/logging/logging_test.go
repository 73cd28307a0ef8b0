package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesBothFiles(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir, "info")
	require.NoError(t, err)

	log.Info("hello from the suite")
	log.Error("something failed")
	_ = log.Sync()

	full, err := os.ReadFile(filepath.Join(dir, "twitchsmoke.log"))
	require.NoError(t, err)
	assert.Contains(t, string(full), "hello from the suite")
	assert.Contains(t, string(full), "something failed")

	errs, err := os.ReadFile(filepath.Join(dir, "errors.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "hello from the suite")
	assert.Contains(t, string(errs), "something failed")
}

func TestFullLogCapturesDebug(t *testing.T) {
	dir := t.TempDir()

	// console level is info, but the full file always gets debug
	log, err := New(dir, "info")
	require.NoError(t, err)

	log.Debug("fine-grained detail")
	_ = log.Sync()

	full, err := os.ReadFile(filepath.Join(dir, "twitchsmoke.log"))
	require.NoError(t, err)
	assert.Contains(t, string(full), "fine-grained detail")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}
