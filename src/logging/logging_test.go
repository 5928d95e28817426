package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevsim/src/config"
	"elevsim/src/eventlog"
)

func TestParseLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))

	t.Setenv("DEBUG", "true")
	assert.Equal(t, slog.LevelDebug, ParseLevel("error"))
}

func TestSetupFansOutToEventLog(t *testing.T) {
	t.Setenv("DEBUG", "")
	var out bytes.Buffer
	store := eventlog.NewStore(0, clockwork.NewFakeClock())

	cfg := config.Default()
	logger, closer, err := Setup(cfg, &out, store.Handler(slog.LevelInfo))
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("Moving Up to floor 6", eventlog.ElevatorKey, 2)
	logger.Debug("hidden")

	assert.Contains(t, out.String(), "Moving Up to floor 6")
	assert.Contains(t, out.String(), "elevator=2")
	assert.NotContains(t, out.String(), "hidden")

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Moving Up to floor 6", entries[0].Message)
	assert.Equal(t, 2, *entries[0].ElevatorID)
}

func TestSetupWritesLogFile(t *testing.T) {
	t.Setenv("DEBUG", "")
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "elevsim.log")

	logger, closer, err := Setup(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	logger.Info("written to file")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to file")
}
