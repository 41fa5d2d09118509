package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps GlobalLogger for one writing JSON lines into a buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := GlobalLogger
	GlobalLogger = &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}
	t.Cleanup(func() { GlobalLogger = prev })
	return &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	t.Run("Round Trips Through Context", func(t *testing.T) {
		id := GenerateCorrelationID()
		assert.NotEmpty(t, id)

		ctx := WithCorrelationID(context.Background(), id)
		assert.Equal(t, id, ExtractCorrelationID(ctx))
	})

	t.Run("Unique Per Generation", func(t *testing.T) {
		assert.NotEqual(t, GenerateCorrelationID(), GenerateCorrelationID())
	})

	t.Run("Absent On Bare Context", func(t *testing.T) {
		assert.Empty(t, ExtractCorrelationID(context.Background()))
	})
}

func TestStoreLogger(t *testing.T) {
	t.Run("Write Carries Correlation ID", func(t *testing.T) {
		buf := captureLogs(t)
		id := GenerateCorrelationID()
		ctx := WithCorrelationID(context.Background(), id)

		NewStoreLogger("memory").LogWrite(ctx, "some_key")

		entry := lastLogLine(t, buf)
		assert.Equal(t, id, entry["correlation_id"])
		assert.Equal(t, "some_key", entry["key"])
		assert.Equal(t, "memory", entry["backend"])
	})

	t.Run("Corrupt Logs At Warn", func(t *testing.T) {
		buf := captureLogs(t)
		NewStoreLogger("memory").LogCorrupt(context.Background(), "some_key", errors.New("bad json"))

		entry := lastLogLine(t, buf)
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "bad json", entry["error"])
	})
}

func TestGatewayLogger(t *testing.T) {
	t.Run("Fallback Carries Correlation ID", func(t *testing.T) {
		buf := captureLogs(t)
		id := GenerateCorrelationID()
		ctx := WithCorrelationID(context.Background(), id)

		NewGatewayLogger().LogFallback(ctx, "captionFor", errors.New("unreachable"))

		entry := lastLogLine(t, buf)
		assert.Equal(t, id, entry["correlation_id"])
		assert.Equal(t, "captionFor", entry["operation"])
	})
}
