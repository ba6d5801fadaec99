package service

import (
	"context"
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"lotolab/events"
	"lotolab/models"
	"lotolab/stats"
	"lotolab/strategy"
)

type generationService struct {
	uowFactory UnitOfWorkFactory
	seed       int64
}

// NewGenerationService creates a new generation service. The seed drives
// the strategy RNGs so generation is reproducible.
func NewGenerationService(uowFactory UnitOfWorkFactory, seed int64) GenerationService {
	return &generationService{uowFactory: uowFactory, seed: seed}
}

// Generate builds the named strategies from the stored draw history and
// produces count combinations per strategy. An empty strategy list runs
// every registered strategy.
func (s *generationService) Generate(ctx context.Context, game models.Game, strategies []string, count int, save bool) ([]models.Combination, error) {
	if count < 1 {
		return nil, fmt.Errorf("combination count must be positive, got %d", count)
	}
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
	if len(draws) == 0 {
		return nil, fmt.Errorf("no draws recorded for game %s, import draws first", game)
	}

	drawStats := stats.New(game, draws)
	rng := rand.New(rand.NewSource(s.seed))

	var all []models.Combination
	for _, name := range strategies {
		gen, err := strategy.New(name, drawStats, rng)
		if err != nil {
			return nil, err
		}
		combos, err := gen.Generate(count)
		if err != nil {
			return nil, fmt.Errorf("strategy %s failed: %w", name, err)
		}
		all = append(all, combos...)

		uow.EventBus().Publish(events.CombinationsGeneratedEvent{
			Game:      game,
			Strategy:  name,
			Count:     len(combos),
			Persisted: save,
		})
	}

	if save {
		if err := uow.CombinationRepository().Save(ctx, all); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit generation: %w", err)
	}

	log.WithFields(log.Fields{
		"game":       game,
		"strategies": len(strategies),
		"generated":  len(all),
		"saved":      save,
	}).Info("Combination generation completed")

	return all, nil
}
