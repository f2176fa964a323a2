package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	buf := &bytes.Buffer{}
	log.Logger = zerolog.New(buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return buf
}

func TestGetLoggerTagsComponent(t *testing.T) {
	buf := captureGlobal(t)

	logger := GetLogger("assembler")
	logger.Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "assembler", entry["component"])
	assert.Equal(t, "hello", entry["message"])
}

func TestLogOperationStart(t *testing.T) {
	buf := captureGlobal(t)

	done := LogOperationStart(GetLogger("test"), "copy")
	done()

	assert.Contains(t, buf.String(), `"operation":"copy"`)
	assert.Contains(t, buf.String(), "Operation completed")
}

func TestGetLogFilePathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.log")
	t.Setenv("WARFORGE_LOG_FILE", path)
	assert.Equal(t, path, getLogFilePath())
}

func TestSetupLogFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "warforge.log")
	f, err := setupLogFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.FileExists(t, path)
}
