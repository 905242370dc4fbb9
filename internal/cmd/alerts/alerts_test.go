package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditgrid/shadowmap/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	alert := NewSuccess("wrote 7 artifacts")
	assert.Equal(t, "✓ wrote 7 artifacts", alert.String())

	alert = NewError("upload failed").WithError(errors.New("status 503"))
	assert.Equal(t, "✗ upload failed: status 503", alert.String())
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelError, "error"},
		{LevelWarning, "warning"},
		{LevelInfo, "info"},
		{LevelSuccess, "success"},
		{Level(42), "unknown(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestFormatWriterTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatTable)

	alert := NewWarning("summary skipped").WithDetails("GEMINI_API_KEY not set")
	require.NoError(t, w.WriteAlert(alert))

	got := buf.String()
	assert.Contains(t, got, "! summary skipped")
	assert.Contains(t, got, "   GEMINI_API_KEY not set")
}

func TestFormatWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatJSON)

	alert := NewError("fetch failed").WithError(errors.New("connection refused"))
	require.NoError(t, w.WriteAlert(alert))

	var data map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "error", data["level"])
	assert.Equal(t, "fetch failed", data["message"])
	assert.Equal(t, "connection refused", data["error"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestFormatWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatYAML)

	require.NoError(t, w.WriteAlert(NewInfo("starting audit")))

	got := buf.String()
	assert.Contains(t, got, "level: info")
	assert.Contains(t, got, "message: starting audit")
}

func TestFormatWriterPlainNoColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.Format("")).DisableColor()

	require.NoError(t, w.WriteAlert(NewSuccess("done")))
	assert.Equal(t, "✓ done\n", buf.String())
	assert.False(t, strings.Contains(buf.String(), "\033["))
}

func TestDiscardWriter(t *testing.T) {
	require.NoError(t, DiscardWriter.WriteAlert(NewInfo("invisible")))
}

func TestNewWriterTo(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf)

	require.NoError(t, w.WriteAlert(NewInfo("hello")))
	assert.Equal(t, "i hello\n", buf.String())
}
