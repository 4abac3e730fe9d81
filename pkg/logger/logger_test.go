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
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruido"))
}

func TestComponent_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, Config{Level: "info", App: "farmacia-api"})

	l.Component("billing").Info().Str("invoice_id", "inv-1").Msg("factura finalizada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "farmacia-api", entry["app"])
	assert.Equal(t, "billing", entry["component"])
	assert.Equal(t, "inv-1", entry["invoice_id"])
	assert.Equal(t, "factura finalizada", entry["message"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, Config{Level: "warn"})
	l.Info().Msg("no aparece")
	assert.Zero(t, buf.Len())
}
