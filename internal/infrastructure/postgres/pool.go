package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

const (
	defaultMaxConns = 25
	defaultMinConns = 2
)

// PoolOption ajusta la configuración del pool antes de abrirlo.
type PoolOption func(*pgxpool.Config)

// WithConnLimits fija MaxConns/MinConns; valores <= 0 conservan los por defecto.
func WithConnLimits(maxConns, minConns int32) PoolOption {
	return func(c *pgxpool.Config) {
		if maxConns > 0 {
			c.MaxConns = maxConns
		}
		if minConns > 0 && minConns <= c.MaxConns {
			c.MinConns = minConns
		}
	}
}

// WithQueryLog registra cada query en el logger con el nivel indicado
// (trace, debug, info, warn, error).
func WithQueryLog(log *logger.Logger, level string) PoolOption {
	return func(c *pgxpool.Config) {
		if log == nil {
			return
		}
		lvl, err := tracelog.LogLevelFromString(level)
		if err != nil {
			lvl = tracelog.LogLevelDebug
		}
		c.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger{log: log.Component("pgx")},
			LogLevel: lvl,
		}
	}
}

// queryLogger adapta tracelog.Logger a zerolog.
type queryLogger struct {
	log *logger.Logger
}

func (q queryLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var ev *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace:
		ev = q.log.Trace()
	case tracelog.LogLevelDebug:
		ev = q.log.Debug()
	case tracelog.LogLevelInfo:
		ev = q.log.Info()
	case tracelog.LogLevelWarn:
		ev = q.log.Warn()
	default:
		ev = q.log.Error()
	}
	ev.Fields(data).Msg(msg)
}

// NewPool crea el pool con la configuración de la app: DATABASE_URL o DB_HOST/DB_PORT/...,
// límites DB_MAX_CONNS/DB_MIN_CONNS y, si DB_LOG_QUERIES=true, log de queries.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	opts := []PoolOption{WithConnLimits(cfg.MaxConns, cfg.MinConns)}
	if cfg.LogQueries {
		opts = append(opts, WithQueryLog(log, "debug"))
	}
	return NewPoolFromDSN(ctx, cfg.ConnectionString(), opts...)
}

// NewPoolFromDSN crea el pool a partir de un connection string y hace ping.
// Todas las conexiones registran el codec NUMERIC <-> decimal.Decimal.
func NewPoolFromDSN(ctx context.Context, dsn string, opts ...PoolOption) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.MaxConns = defaultMaxConns
	poolConfig.MinConns = defaultMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	for _, opt := range opts {
		opt(poolConfig)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
