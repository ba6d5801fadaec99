package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lotolab/backtest"
	"lotolab/events"
	"lotolab/models"
	"lotolab/strategy"
)

type backtestService struct {
	uowFactory UnitOfWorkFactory
	config     backtest.Config
}

// NewBacktestService creates a new backtest service
func NewBacktestService(uowFactory UnitOfWorkFactory, config backtest.Config) BacktestService {
	return &backtestService{uowFactory: uowFactory, config: config}
}

// Run walk-forward backtests the named strategies against the stored draw
// history. An empty strategy list runs every registered strategy.
func (s *backtestService) Run(ctx context.Context, game models.Game, strategies []string, save bool) ([]models.StrategyResult, error) {
	return s.run(ctx, game, strategies, save, func(b *backtest.Backtester, draws []models.Draw, names []string) ([]models.StrategyResult, error) {
		return b.Run(ctx, draws, names)
	})
}

// RunSplit backtests against a single train/test partition
func (s *backtestService) RunSplit(ctx context.Context, game models.Game, strategies []string, testRatio float64, save bool) ([]models.StrategyResult, error) {
	return s.run(ctx, game, strategies, save, func(b *backtest.Backtester, draws []models.Draw, names []string) ([]models.StrategyResult, error) {
		return b.RunSplit(ctx, draws, names, testRatio)
	})
}

func (s *backtestService) run(ctx context.Context, game models.Game, strategies []string, save bool,
	execute func(*backtest.Backtester, []models.Draw, []string) ([]models.StrategyResult, error)) ([]models.StrategyResult, error) {

	if len(strategies) == 0 {
		strategies = strategy.Names()
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	draws, err := uow.DrawRepository().GetByGame(ctx, game)
	if err != nil {
		return nil, err
	}

	b := backtest.New(game, s.config, log.StandardLogger())
	results, err := execute(b, draws, strategies)
	if err != nil {
		return nil, fmt.Errorf("backtest failed: %w", err)
	}

	if save {
		if err := uow.BacktestRepository().Save(ctx, results); err != nil {
			return nil, err
		}
	}

	best := ""
	if len(results) > 0 && !results[0].Failed() {
		best = results[0].Strategy
	}
	uow.EventBus().Publish(events.BacktestCompletedEvent{
		Game:       game,
		Strategies: len(results),
		Best:       best,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit backtest: %w", err)
	}

	log.WithFields(log.Fields{
		"game":       game,
		"strategies": len(results),
		"best":       best,
		"saved":      save,
	}).Info("Backtest completed")

	return results, nil
}
