// Package db owns the pooled database connections for the server. It
// drives pgx through database/sql to get bounded, lazily validated
// pooling: connections are opened on demand, never at construction, so
// an unreachable database fails individual acquires instead of startup.
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"tariffmcp/logger"
)

const (
	defaultMaxOpenConns   = 10
	defaultMaxIdleConns   = 5
	defaultConnLifetime   = time.Hour
	defaultAcquireTimeout = 5 * time.Second
)

// Config bounds the pool.
type Config struct {
	DSN            string
	MaxConns       int
	MaxIdleConns   int
	ConnLifetime   time.Duration
	AcquireTimeout time.Duration
}

// Pool lends and collects database connections. Acquire blocks up to the
// configured timeout when the pool is saturated; Release always returns
// the connection, faulted or not, and the pool revalidates on next use.
type Pool struct {
	db             *sql.DB
	acquireTimeout time.Duration
	log            logger.Logger
}

// New opens the pool. No connection is dialed here; reachability is
// checked per acquire.
func New(cfg Config, log logger.Logger) (*Pool, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("db: empty DSN")
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.ConnLifetime <= 0 {
		cfg.ConnLifetime = defaultConnLifetime
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = defaultAcquireTimeout
	}

	sqlDB, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnLifetime)

	return &Pool{
		db:             sqlDB,
		acquireTimeout: cfg.AcquireTimeout,
		log:            log,
	}, nil
}

// Acquire checks a connection out of the pool. On failure it pings the
// database once to force a fresh dial and retries before giving up, so a
// dropped backend recovers within a single request.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.db.Conn(acquireCtx)
	if err == nil {
		return conn, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.log.Warn("connection acquire failed, retrying after ping", logger.Error(err))

	retryCtx, cancelRetry := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancelRetry()

	if pingErr := p.db.PingContext(retryCtx); pingErr != nil {
		return nil, pingErr
	}
	return p.db.Conn(retryCtx)
}

// Release returns a connection to the pool. Safe on nil.
func (p *Pool) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		p.log.Warn("connection release failed", logger.Error(err))
	}
}

// Close tears the pool down at process shutdown.
func (p *Pool) Close() error {
	return p.db.Close()
}

// Stats exposes pool bookkeeping for logging.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}
