package eventlog

import (
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestLogNewestFirst(t *testing.T) {
	clk := clockwork.NewFakeClock()
	store := NewStore(0, clk)

	store.add(slog.LevelInfo, "first", intPtr(1))
	clk.Advance(time.Second)
	store.add(slog.LevelInfo, "second", nil)

	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Message)
	assert.Nil(t, entries[0].ElevatorID)
	assert.Equal(t, "first", entries[1].Message)
	assert.Equal(t, 1, *entries[1].ElevatorID)
	assert.True(t, entries[0].Time.After(entries[1].Time))
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestLimitDropsOldest(t *testing.T) {
	store := NewStore(2, clockwork.NewFakeClock())
	store.add(slog.LevelInfo, "a", nil)
	store.add(slog.LevelInfo, "b", nil)
	store.add(slog.LevelInfo, "c", nil)

	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Message)
	assert.Equal(t, "b", entries[1].Message)
}

func TestClear(t *testing.T) {
	store := NewStore(0, clockwork.NewFakeClock())
	store.add(slog.LevelInfo, "a", nil)
	store.Clear()
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Entries())
}

func TestHandlerExtractsElevatorID(t *testing.T) {
	store := NewStore(0, clockwork.NewFakeClock())
	logger := slog.New(store.Handler(slog.LevelInfo))

	logger.Info("fleet message")
	logger.With(ElevatorKey, 3).Info("from elevator three")
	logger.Info("inline id", ElevatorKey, 2)
	logger.Debug("filtered out", ElevatorKey, 2)
	logger.WithGroup("g").Info("grouped", ElevatorKey, 4)

	entries := store.Entries()
	require.Len(t, entries, 4)

	assert.Equal(t, "grouped", entries[0].Message)
	assert.Nil(t, entries[0].ElevatorID)

	assert.Equal(t, "inline id", entries[1].Message)
	require.NotNil(t, entries[1].ElevatorID)
	assert.Equal(t, 2, *entries[1].ElevatorID)

	assert.Equal(t, "from elevator three", entries[2].Message)
	require.NotNil(t, entries[2].ElevatorID)
	assert.Equal(t, 3, *entries[2].ElevatorID)

	assert.Equal(t, "fleet message", entries[3].Message)
	assert.Nil(t, entries[3].ElevatorID)
}

func TestEntryString(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 5, 0, time.UTC)
	assert.Equal(t, "12:00:05 [Elevator 2] Moving Up to floor 6",
		Entry{Time: at, Message: "Moving Up to floor 6", ElevatorID: intPtr(2)}.String())
	assert.Equal(t, "12:00:05 No suitable elevator available for floor 5 (Up)",
		Entry{Time: at, Message: "No suitable elevator available for floor 5 (Up)"}.String())
}
