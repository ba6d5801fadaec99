package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"lotolab/database"
	"lotolab/models"
)

// DrawRepository implements the service.DrawRepository interface
type DrawRepository struct {
	q queryable
}

// NewDrawRepository creates a new draw repository
func NewDrawRepository(db *database.DB) *DrawRepository {
	return &DrawRepository{q: db.Pool}
}

// newDrawRepositoryWithTx creates a new draw repository with a transaction
func newDrawRepositoryWithTx(tx queryable) *DrawRepository {
	return &DrawRepository{q: tx}
}

// GetByGame retrieves all draws for a game, most recent first
func (r *DrawRepository) GetByGame(ctx context.Context, game models.Game) ([]models.Draw, error) {
	query := `
		SELECT id, game, draw_date, day_of_week, numbers, stars
		FROM draws
		WHERE game = $1
		ORDER BY draw_date DESC
	`

	rows, err := r.q.Query(ctx, query, game)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws for game %s: %w", game, err)
	}
	defer rows.Close()

	var draws []models.Draw
	for rows.Next() {
		var d models.Draw
		if err := rows.Scan(&d.ID, &d.Game, &d.Date, &d.DayOfWeek, &d.Numbers, &d.Stars); err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}

	return draws, nil
}

// GetLatest retrieves the most recent draw for a game
func (r *DrawRepository) GetLatest(ctx context.Context, game models.Game) (*models.Draw, error) {
	query := `
		SELECT id, game, draw_date, day_of_week, numbers, stars
		FROM draws
		WHERE game = $1
		ORDER BY draw_date DESC
		LIMIT 1
	`

	var d models.Draw
	err := r.q.QueryRow(ctx, query, game).Scan(&d.ID, &d.Game, &d.Date, &d.DayOfWeek, &d.Numbers, &d.Stars)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest draw for game %s: %w", game, err)
	}

	return &d, nil
}

// Insert persists a draw
func (r *DrawRepository) Insert(ctx context.Context, draw *models.Draw) error {
	query := `
		INSERT INTO draws (game, draw_date, day_of_week, numbers, stars)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query, draw.Game, draw.Date, draw.DayOfWeek, draw.Numbers, draw.Stars).Scan(&draw.ID)
	if err != nil {
		return fmt.Errorf("failed to insert draw for %s on %s: %w", draw.Game, draw.Date.Format("2006-01-02"), err)
	}

	return nil
}

// Exists reports whether a draw is already recorded for the game and date
func (r *DrawRepository) Exists(ctx context.Context, game models.Game, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM draws WHERE game = $1 AND draw_date = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, game, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check draw existence: %w", err)
	}

	return exists, nil
}

// Count returns the number of recorded draws for a game
func (r *DrawRepository) Count(ctx context.Context, game models.Game) (int, error) {
	query := `SELECT COUNT(*) FROM draws WHERE game = $1`

	var count int
	if err := r.q.QueryRow(ctx, query, game).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count draws for game %s: %w", game, err)
	}

	return count, nil
}
