package logger_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fsguard/internal/adapters/logger"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Info("Deleting file '/a'")
	log.Warn("operation rm inactive for 120ms")

	out := buf.String()
	assert.Contains(t, out, `level=INFO msg="Deleting file '/a'"`)
	assert.Contains(t, out, `level=WARN msg="operation rm inactive for 120ms"`)

	buf.Reset()
	log.SetLevel(domain.LogLevelWarn)
	log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Error(zerr.Wrap(errors.New("input/output error"), "failed to list"))

	out := buf.String()
	assert.Contains(t, out, `level=ERROR msg="failed to list"`)
	assert.Contains(t, out, "input/output error")
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_ConfigureRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fsguard.log")
	log := logger.New()

	require.NoError(t, log.Configure(domain.LoggingConfig{
		Level:      "debug",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}))
	log.Info("written to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestLogger_ConfigureWithoutFileKeepsOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	require.NoError(t, log.Configure(domain.LoggingConfig{Level: "error"}))
	log.Warn("hidden")
	log.Error(errors.New("shown"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NoError(t, log.Close())
}
