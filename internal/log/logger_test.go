package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	records := []map[string]any{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		record := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestLogger(t *testing.T) {
	t.Run("IsInitialized", func(t *testing.T) {
		assert.False(t, Logger{}.IsInitialized())
		assert.True(t, NewLogger(&bytes.Buffer{}, slog.LevelInfo).IsInitialized())
	})

	t.Run("Namespace", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelDebug)
		logger.InfoNs(NsDB, "database opened", KV{"path": "drivers.db"})

		records := decodeLines(t, &buf)
		require.Len(t, records, 1)
		assert.Equal(t, "INFO", records[0]["level"])
		assert.Equal(t, "database opened", records[0]["msg"])
		assert.Equal(t, "db", records[0]["ns"])
		assert.Equal(t, "drivers.db", records[0]["path"])
	})

	t.Run("LevelFilter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelWarn)
		logger.Debug("dropped")
		logger.Info("dropped")
		logger.Warn("kept")
		logger.ErrorNs(NsDemo, "kept too")

		records := decodeLines(t, &buf)
		require.Len(t, records, 2)
		assert.Equal(t, "kept", records[0]["msg"])
		assert.Equal(t, "demo", records[1]["ns"])
	})

	t.Run("With", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo).With(KV{"runId": "abc"})
		logger.Info("hello")

		records := decodeLines(t, &buf)
		require.Len(t, records, 1)
		assert.Equal(t, "abc", records[0]["runId"])
	})
}
