package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Connection retry backoff: delays double from the minimum up to the cap,
// with a small jitter so concurrent clients do not reconnect in lockstep
const (
	connectAttempts  = 5
	minRetryDelay    = 500 * time.Millisecond
	maxRetryDelay    = 10 * time.Second
	retryDelayFactor = 2
	retryJitter      = 0.1
)

// DB represents a database connection pool
type DB struct {
	*pgxpool.Pool
}

// NewConnection creates a new database connection pool, retrying with
// exponential backoff when the database is not yet reachable
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	var lastErr error
	delay := minRetryDelay

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := pgxpool.New(ctx, databaseURL)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return &DB{Pool: pool}, nil
			}
			pool.Close()
		}
		lastErr = err

		if attempt == connectAttempts {
			break
		}
		log.WithError(err).WithFields(log.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).Warn("Database connection failed, retrying")

		select {
		case <-time.After(jittered(delay)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		delay *= retryDelayFactor
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, lastErr)
}

// jittered spreads a delay by ±retryJitter
func jittered(delay time.Duration) time.Duration {
	spread := 1 + retryJitter*(2*rand.Float64()-1)
	return time.Duration(float64(delay) * spread)
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}
