package repository

import (
	"context"
	"fmt"

	"lotolab/database"
	"lotolab/models"
)

// BacktestRepository implements the service.BacktestRepository interface
type BacktestRepository struct {
	q queryable
}

// NewBacktestRepository creates a new backtest repository
func NewBacktestRepository(db *database.DB) *BacktestRepository {
	return &BacktestRepository{q: db.Pool}
}

// newBacktestRepositoryWithTx creates a new backtest repository with a transaction
func newBacktestRepositoryWithTx(tx queryable) *BacktestRepository {
	return &BacktestRepository{q: tx}
}

// Save persists a batch of strategy results
func (r *BacktestRepository) Save(ctx context.Context, results []models.StrategyResult) error {
	query := `
		INSERT INTO backtest_results
			(game, strategy, avg_score, median_score, max_score, std_dev,
			 win_rate, tiers, total_combinations, test_draws, error, run_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	for i := range results {
		res := &results[i]
		err := r.q.QueryRow(ctx, query,
			res.Game, res.Strategy, res.AvgScore, res.MedianScore, res.MaxScore,
			res.StdDev, res.WinRate, res.Tiers, res.TotalCombinations,
			res.TestDraws, res.Error, res.RunAt,
		).Scan(&res.ID)
		if err != nil {
			return fmt.Errorf("failed to save backtest result for strategy %s: %w", res.Strategy, err)
		}
	}

	return nil
}

// GetLatestRun returns the results sharing the most recent run timestamp
// for a game, ranked by win rate then average score
func (r *BacktestRepository) GetLatestRun(ctx context.Context, game models.Game) ([]models.StrategyResult, error) {
	query := `
		SELECT id, game, strategy, avg_score, median_score, max_score, std_dev,
		       win_rate, tiers, total_combinations, test_draws, error, run_at
		FROM backtest_results
		WHERE game = $1
		  AND run_at = (SELECT MAX(run_at) FROM backtest_results WHERE game = $1)
		ORDER BY win_rate DESC, avg_score DESC
	`

	rows, err := r.q.Query(ctx, query, game)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results for game %s: %w", game, err)
	}
	defer rows.Close()

	var results []models.StrategyResult
	for rows.Next() {
		var res models.StrategyResult
		if err := rows.Scan(
			&res.ID, &res.Game, &res.Strategy, &res.AvgScore, &res.MedianScore,
			&res.MaxScore, &res.StdDev, &res.WinRate, &res.Tiers,
			&res.TotalCombinations, &res.TestDraws, &res.Error, &res.RunAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan backtest result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate backtest results: %w", err)
	}

	return results, nil
}
