package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNew_FiltersAndWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info("hidden")
	log.Warn("shown", "view", "mainMenu")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "mainMenu", rec["view"])
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mvncli.log")
	log, closeFn, err := Open(path, "debug")
	require.NoError(t, err)
	log.Debug("started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	log, closeFn, err := Open("", "debug")
	require.NoError(t, err)
	log.Error("nowhere")
	assert.NoError(t, closeFn())
}
