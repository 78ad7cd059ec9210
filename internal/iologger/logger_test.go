package iologger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	t.Run("json with level", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.LogConfig{Format: "json", Level: "warn"}
		log := slog.New(NewHandler(&buf, cfg))

		log.Info("skipped")
		log.Warn("condition", "field_id", "f1", "stage", "baseline")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "condition", rec["msg"])
		assert.Equal(t, "f1", rec["field_id"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.LogConfig{Format: "text", Level: "debug"}
		slog.New(NewHandler(&buf, cfg)).Debug("hello", "n", 1)
		assert.Contains(t, buf.String(), "msg=hello n=1")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	require.NoError(t, Init(dir, cfg))
	slog.Info("first")
	require.NoError(t, Init(dir, cfg))
	slog.Info("second")
	Close()

	content, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), "first")
	assert.Contains(t, string(content), "second")

	err = Init(filepath.Join(dir, "missing", "dir"), cfg)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Contains(t, gnErr.Msg, "GNPLET_LOG_DESTINATION")
}
