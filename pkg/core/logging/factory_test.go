package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/msto63/hcmd/foundation/core/log"
	"github.com/msto63/hcmd/pkg/core/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Name: "hcmd", Level: "info", Format: "json", Output: &buf})

	logger.Debug("hidden")
	logger.Info("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "hcmd", entry["logger"])
}

func TestNewLoggerFallbacks(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: "loud", Format: "xml", Output: &bytes.Buffer{}})
	assert.Equal(t, mdwlog.LevelWarn, logger.GetLevel())
}

func TestAdditionalOutputs(t *testing.T) {
	var primary, copyBuf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "warn", Output: &primary, AdditionalOutputs: []io.Writer{&copyBuf}})

	logger.Warn("twice")
	assert.Contains(t, primary.String(), "twice")
	assert.Equal(t, primary.String(), copyBuf.String())
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.General.LogLevel = "debug"

	lc := FromConfig(cfg)
	assert.Equal(t, "hcmd", lc.Name)
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "text", lc.Format)
	assert.Equal(t, DefaultLoggerConfig("hcmd").Format, lc.Format)
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hcmd.log")
	f, err := OpenLogFile(path)
	require.NoError(t, err)

	logger := NewLogger(LoggerConfig{Level: "warn", Output: f})
	logger.Warn("to file")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
