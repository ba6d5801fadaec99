package repository

import (
	"context"
	"fmt"

	"lotolab/database"
	"lotolab/models"
)

// CombinationRepository implements the service.CombinationRepository interface
type CombinationRepository struct {
	q queryable
}

// NewCombinationRepository creates a new combination repository
func NewCombinationRepository(db *database.DB) *CombinationRepository {
	return &CombinationRepository{q: db.Pool}
}

// newCombinationRepositoryWithTx creates a new combination repository with a transaction
func newCombinationRepositoryWithTx(tx queryable) *CombinationRepository {
	return &CombinationRepository{q: tx}
}

// Save persists a batch of combinations
func (r *CombinationRepository) Save(ctx context.Context, combos []models.Combination) error {
	query := `
		INSERT INTO combinations (game, numbers, stars, strategy, score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	for i := range combos {
		c := &combos[i]
		err := r.q.QueryRow(ctx, query, c.Game, c.Numbers, c.Stars, c.Strategy, c.Score).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save combination %s: %w", c.String(), err)
		}
	}

	return nil
}

// GetRecent returns the most recently generated combinations for a game
func (r *CombinationRepository) GetRecent(ctx context.Context, game models.Game, limit int) ([]models.Combination, error) {
	query := `
		SELECT id, game, numbers, stars, strategy, score, created_at
		FROM combinations
		WHERE game = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, game, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query combinations for game %s: %w", game, err)
	}
	defer rows.Close()

	var combos []models.Combination
	for rows.Next() {
		var c models.Combination
		if err := rows.Scan(&c.ID, &c.Game, &c.Numbers, &c.Stars, &c.Strategy, &c.Score, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan combination: %w", err)
		}
		combos = append(combos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate combinations: %w", err)
	}

	return combos, nil
}
