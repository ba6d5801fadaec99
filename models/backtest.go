package models

import "time"

// StrategyResult represents aggregated backtest metrics for one strategy
// over a fixed test window
type StrategyResult struct {
	ID                int64          `db:"id"`
	Game              Game           `db:"game"`
	Strategy          string         `db:"strategy"`
	AvgScore          float64        `db:"avg_score"`
	MedianScore       float64        `db:"median_score"`
	MaxScore          int            `db:"max_score"`
	StdDev            float64        `db:"std_dev"`
	WinRate           float64        `db:"win_rate"` // percentage 0-100
	Tiers             map[string]int `db:"tiers"`    // prize tier name -> count
	TotalCombinations int            `db:"total_combinations"`
	TestDraws         int            `db:"test_draws"`
	Error             string         `db:"error"`
	RunAt             time.Time      `db:"run_at"`
}

// Failed reports whether the strategy could not be evaluated
func (r *StrategyResult) Failed() bool {
	return r.Error != ""
}

// PrizeWins returns the total number of scored combinations that reached
// any prize tier
func (r *StrategyResult) PrizeWins() int {
	total := 0
	for _, count := range r.Tiers {
		total += count
	}
	return total
}
