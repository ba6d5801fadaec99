package service

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"lotolab/csvdata"
	"lotolab/events"
	"lotolab/models"
)

type importService struct {
	uowFactory UnitOfWorkFactory
}

// NewImportService creates a new import service
func NewImportService(uowFactory UnitOfWorkFactory) ImportService {
	return &importService{uowFactory: uowFactory}
}

// ImportCSV parses draws from r and persists the ones not already
// recorded. The whole batch commits atomically; already-recorded dates are
// skipped, invalid rows are counted as rejected.
func (s *importService) ImportCSV(ctx context.Context, game models.Game, r io.Reader) (ImportSummary, error) {
	parsed, err := csvdata.ReadDraws(game, r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to parse draws: %w", err)
	}

	summary := ImportSummary{Rejected: parsed.Rejected}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ImportSummary{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.DrawRepository()
	for i := range parsed.Draws {
		draw := &parsed.Draws[i]
		exists, err := repo.Exists(ctx, game, draw.Date)
		if err != nil {
			return ImportSummary{}, err
		}
		if exists {
			summary.Skipped++
			continue
		}
		if err := repo.Insert(ctx, draw); err != nil {
			return ImportSummary{}, err
		}
		summary.Imported++
	}

	uow.EventBus().Publish(events.DrawsImportedEvent{
		Game:     game,
		Imported: summary.Imported,
		Skipped:  summary.Skipped,
	})

	if err := uow.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("failed to commit import: %w", err)
	}

	log.WithFields(log.Fields{
		"game":     game,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"rejected": summary.Rejected,
	}).Info("Draw import completed")

	return summary, nil
}
