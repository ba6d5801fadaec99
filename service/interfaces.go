package service

import (
	"context"
	"io"
	"time"

	"lotolab/events"
	"lotolab/models"
)

// DrawRepository manages historical draw records
type DrawRepository interface {
	// GetByGame returns all draws for a game, most recent first
	GetByGame(ctx context.Context, game models.Game) ([]models.Draw, error)
	// GetLatest returns the most recent draw for a game, or nil when none exist
	GetLatest(ctx context.Context, game models.Game) (*models.Draw, error)
	// Insert persists a draw
	Insert(ctx context.Context, draw *models.Draw) error
	// Exists reports whether a draw is already recorded for the game and date
	Exists(ctx context.Context, game models.Game, date time.Time) (bool, error)
	// Count returns the number of recorded draws for a game
	Count(ctx context.Context, game models.Game) (int, error)
}

// CombinationRepository manages generated combinations
type CombinationRepository interface {
	// Save persists a batch of combinations
	Save(ctx context.Context, combos []models.Combination) error
	// GetRecent returns the most recently generated combinations for a game
	GetRecent(ctx context.Context, game models.Game, limit int) ([]models.Combination, error)
}

// BacktestRepository manages persisted backtest results
type BacktestRepository interface {
	// Save persists a batch of strategy results
	Save(ctx context.Context, results []models.StrategyResult) error
	// GetLatestRun returns the results of the most recent backtest run for
	// a game, ranked best first
	GetLatestRun(ctx context.Context, game models.Game) ([]models.StrategyResult, error)
}

// EventPublisher publishes events to be delivered after commit
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents a transactional boundary over the repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DrawRepository() DrawRepository
	CombinationRepository() CombinationRepository
	BacktestRepository() BacktestRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// ImportSummary reports the outcome of a draw import
type ImportSummary struct {
	Imported int
	Skipped  int
	Rejected int
}

// ImportService loads historical draws into the store
type ImportService interface {
	// ImportCSV parses draws from r and persists the ones not already
	// recorded. Rows failing validation are counted, not fatal.
	ImportCSV(ctx context.Context, game models.Game, r io.Reader) (ImportSummary, error)
}

// GenerationService produces combinations from the recorded draw history
type GenerationService interface {
	// Generate builds the named strategies from the stored draws and
	// produces count combinations per strategy, optionally persisting them
	Generate(ctx context.Context, game models.Game, strategies []string, count int, save bool) ([]models.Combination, error)
}

// BacktestService evaluates strategies against the recorded draw history
type BacktestService interface {
	// Run walk-forward backtests the named strategies and optionally
	// persists the ranked results
	Run(ctx context.Context, game models.Game, strategies []string, save bool) ([]models.StrategyResult, error)
	// RunSplit backtests against a single train/test partition
	RunSplit(ctx context.Context, game models.Game, strategies []string, testRatio float64, save bool) ([]models.StrategyResult, error)
}
