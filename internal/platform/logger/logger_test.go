package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept", "request_id", "r1")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "r1", line["request_id"])
	assert.Equal(t, "credo-consent", line["service"])
}

func TestNewWithWriter_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "chatty").Info("visible")
	assert.NotZero(t, buf.Len())
}
