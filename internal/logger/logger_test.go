package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetupWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	_, err := Setup(Config{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	l := Component("contact")
	l.Info().Str("status", "sent").Msg("contact submission processed")
	l.Debug().Msg("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "contact", entry["component"])
	assert.Equal(t, "sent", entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetupRejectsUnknownFormat(t *testing.T) {
	_, err := Setup(Config{Format: "xml"})
	assert.Error(t, err)
}
