package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "✓ Quote added", NewSuccess("Quote added").String())
	assert.Equal(t, "✗ Sync failed: boom", NewError("Sync failed").WithError(errors.New("boom")).String())
}

func TestWriterTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatTable, true)

	require.NoError(t, w.WriteAlert(NewWarning("Sync complete").WithDetails("1 conflict")))
	assert.Equal(t, "! Sync complete\n   1 conflict\n", buf.String())
}

func TestWriterQuiet(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatTable, true).Quiet(true)

	require.NoError(t, w.WriteAlert(NewSuccess("Quote added")))
	assert.Empty(t, buf.String())

	require.NoError(t, w.WriteAlert(NewError("failed")))
	assert.Equal(t, "✗ failed\n", buf.String())
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatJSON, false)

	require.NoError(t, w.WriteAlert(NewError("Sync failed").WithError(errors.New("timeout"))))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "Sync failed", got["message"])
	assert.Equal(t, "timeout", got["error"])
}

func TestWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatYAML, false)

	require.NoError(t, w.WriteAlert(NewInfo("hello")))
	assert.Contains(t, buf.String(), "level: info")
	assert.Contains(t, buf.String(), "message: hello")
}
