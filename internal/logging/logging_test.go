package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("quiz generated", "phone", "33600000000")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "quiz generated", rec["msg"])
	assert.Equal(t, "33600000000", rec["phone"])
	assert.Contains(t, rec, "source")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", slog.LevelDebug)

	logger.Debug("sign selected", "sign", "AB3a")

	out := buf.String()
	assert.Contains(t, out, "sign selected")
	assert.Contains(t, out, "AB3a")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
