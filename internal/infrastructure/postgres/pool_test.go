package postgres

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func parseTestConfig(t *testing.T) *pgxpool.Config {
	t.Helper()
	c, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/farmacia?sslmode=disable")
	require.NoError(t, err)
	c.MaxConns = defaultMaxConns
	c.MinConns = defaultMinConns
	return c
}

func TestWithConnLimits(t *testing.T) {
	c := parseTestConfig(t)
	WithConnLimits(10, 4)(c)
	assert.Equal(t, int32(10), c.MaxConns)
	assert.Equal(t, int32(4), c.MinConns)

	// Valores no positivos conservan los actuales; MinConns nunca supera MaxConns.
	c = parseTestConfig(t)
	WithConnLimits(0, 50)(c)
	assert.Equal(t, int32(defaultMaxConns), c.MaxConns)
	assert.Equal(t, int32(defaultMinConns), c.MinConns)
}

func TestWithQueryLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.FromZerolog(zerolog.New(&buf))

	c := parseTestConfig(t)
	WithQueryLog(log, "nivel-raro")(c)
	tracer, ok := c.ConnConfig.Tracer.(*tracelog.TraceLog)
	require.True(t, ok)
	assert.Equal(t, tracelog.LogLevelDebug, tracer.LogLevel, "nivel desconocido cae a debug")

	tracer.Logger.Log(context.Background(), tracelog.LogLevelWarn, "Query", map[string]any{"sql": "SELECT 1"})
	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"component":"pgx"`)
	assert.Contains(t, out, `"sql":"SELECT 1"`)

	c = parseTestConfig(t)
	WithQueryLog(nil, "debug")(c)
	assert.Nil(t, c.ConnConfig.Tracer)
}
