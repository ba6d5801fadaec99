package backtest

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotolab/models"
)

func makeDraws(t *testing.T, game models.Game, count int) []models.Draw {
	t.Helper()
	rules := game.Rules()
	rng := rand.New(rand.NewSource(17))

	draws := make([]models.Draw, 0, count)
	for i := 0; i < count; i++ {
		d := models.Draw{
			Game:    game,
			Date:    time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*3),
			Numbers: uniquePicks(rng, rules.MainCount, rules.MainMax),
			Stars:   uniquePicks(rng, rules.StarCount, rules.StarMax),
		}
		require.NoError(t, d.Validate())
		draws = append(draws, d)
	}
	return draws
}

func uniquePicks(rng *rand.Rand, count, max int) []int {
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		v := rng.Intn(max) + 1
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func TestSplit(t *testing.T) {
	t.Run("thirty percent of fifty draws", func(t *testing.T) {
		draws := makeDraws(t, models.GameEuromillions, 50)
		train, test, err := Split(draws, 0.3)
		require.NoError(t, err)

		assert.Len(t, test, 15)
		assert.Len(t, train, 35)
	})

	t.Run("test set holds the most recent draws", func(t *testing.T) {
		draws := makeDraws(t, models.GameEuromillions, 50)
		train, test, err := Split(draws, 0.3)
		require.NoError(t, err)

		oldestTest := test[len(test)-1].Date
		for _, d := range train {
			assert.True(t, d.Date.Before(oldestTest))
		}
	})

	t.Run("partitions are disjoint and complete", func(t *testing.T) {
		draws := makeDraws(t, models.GameEuromillions, 50)
		train, test, err := Split(draws, 0.3)
		require.NoError(t, err)

		seen := make(map[time.Time]int)
		for _, d := range train {
			seen[d.Date]++
		}
		for _, d := range test {
			seen[d.Date]++
		}
		assert.Len(t, seen, 50)
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
	})

	t.Run("invalid ratios rejected", func(t *testing.T) {
		draws := makeDraws(t, models.GameEuromillions, 10)
		for _, ratio := range []float64{0, 1, -0.5, 1.5} {
			_, _, err := Split(draws, ratio)
			assert.Error(t, err, "ratio %v", ratio)
		}
	})

	t.Run("too few draws", func(t *testing.T) {
		draws := makeDraws(t, models.GameEuromillions, 2)
		_, _, err := Split(draws, 0.1)
		assert.Error(t, err)
	})
}

func TestRunSplit(t *testing.T) {
	draws := makeDraws(t, models.GameEuromillions, 120)
	b := New(models.GameEuromillions, Config{PerDraw: 5, MinTrain: 50, Seed: 3}, nil)

	t.Run("evaluates every strategy", func(t *testing.T) {
		results, err := b.RunSplit(context.Background(), draws, []string{"frequency", "coverage", "anti_bias"}, 0.3)
		require.NoError(t, err)
		require.Len(t, results, 3)

		for _, r := range results {
			assert.False(t, r.Failed(), "strategy %s: %s", r.Strategy, r.Error)
			assert.Equal(t, 36, r.TestDraws)
			// 5 combinations scored against each of 36 test draws
			assert.Equal(t, 180, r.TotalCombinations)
			assert.GreaterOrEqual(t, r.WinRate, 0.0)
			assert.LessOrEqual(t, r.WinRate, 100.0)
			assert.GreaterOrEqual(t, r.MaxScore, 0)
		}
	})

	t.Run("results ranked by win rate then average score", func(t *testing.T) {
		results, err := b.RunSplit(context.Background(), draws, []string{"frequency", "mixed", "time_series", "bayesian"}, 0.3)
		require.NoError(t, err)

		for i := 0; i+1 < len(results); i++ {
			a, c := results[i], results[i+1]
			if a.WinRate == c.WinRate {
				assert.GreaterOrEqual(t, a.AvgScore, c.AvgScore)
			} else {
				assert.Greater(t, a.WinRate, c.WinRate)
			}
		}
	})

	t.Run("unknown strategy recorded as failed without affecting others", func(t *testing.T) {
		results, err := b.RunSplit(context.Background(), draws, []string{"frequency", "astrology"}, 0.3)
		require.NoError(t, err)
		require.Len(t, results, 2)

		// Failed strategies rank last
		assert.Equal(t, "astrology", results[1].Strategy)
		assert.True(t, results[1].Failed())
		assert.Zero(t, results[1].TotalCombinations)
		assert.Zero(t, results[1].WinRate)

		assert.Equal(t, "frequency", results[0].Strategy)
		assert.False(t, results[0].Failed())
		assert.Equal(t, 180, results[0].TotalCombinations)
	})

	t.Run("too little training data", func(t *testing.T) {
		few := makeDraws(t, models.GameEuromillions, 30)
		_, err := b.RunSplit(context.Background(), few, []string{"frequency"}, 0.3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "training draws")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := b.RunSplit(ctx, draws, []string{"frequency"}, 0.3)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunWalkForward(t *testing.T) {
	draws := makeDraws(t, models.GameEuromillions, 80)
	config := Config{HoldOut: 10, PerDraw: 3, MinTrain: 50, Seed: 5}
	b := New(models.GameEuromillions, config, nil)

	t.Run("scores per-draw batches over the hold-out window", func(t *testing.T) {
		results, err := b.Run(context.Background(), draws, []string{"frequency", "markov"})
		require.NoError(t, err)
		require.Len(t, results, 2)

		for _, r := range results {
			assert.False(t, r.Failed(), "strategy %s: %s", r.Strategy, r.Error)
			assert.Equal(t, 10, r.TestDraws)
			// 3 combinations per held-out draw
			assert.Equal(t, 30, r.TotalCombinations)
		}
	})

	t.Run("reproducible with the same seed", func(t *testing.T) {
		first, err := b.Run(context.Background(), draws, []string{"frequency"})
		require.NoError(t, err)
		second, err := b.Run(context.Background(), draws, []string{"frequency"})
		require.NoError(t, err)

		assert.Equal(t, first[0].AvgScore, second[0].AvgScore)
		assert.Equal(t, first[0].WinRate, second[0].WinRate)
		assert.Equal(t, first[0].Tiers, second[0].Tiers)
	})

	t.Run("insufficient history rejected", func(t *testing.T) {
		few := makeDraws(t, models.GameEuromillions, 40)
		_, err := b.Run(context.Background(), few, []string{"frequency"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "need at least 60 draws")
	})

	t.Run("invalid hold-out rejected", func(t *testing.T) {
		bad := New(models.GameEuromillions, Config{HoldOut: 0, PerDraw: 3, MinTrain: 10}, nil)
		_, err := bad.Run(context.Background(), draws, []string{"frequency"})
		assert.Error(t, err)
	})
}

func TestFillMetrics(t *testing.T) {
	t.Run("moments", func(t *testing.T) {
		r := models.StrategyResult{Tiers: map[string]int{"2+0": 2}}
		fillMetrics(&r, []int{0, 2, 2, 4, 12})

		assert.Equal(t, 5, r.TotalCombinations)
		assert.InDelta(t, 4.0, r.AvgScore, 1e-9)
		assert.InDelta(t, 2.0, r.MedianScore, 1e-9)
		assert.Equal(t, 12, r.MaxScore)
		assert.Greater(t, r.StdDev, 0.0)
		assert.InDelta(t, 40.0, r.WinRate, 1e-9)
	})

	t.Run("empty points", func(t *testing.T) {
		r := models.StrategyResult{Tiers: map[string]int{}}
		fillMetrics(&r, nil)
		assert.Zero(t, r.TotalCombinations)
		assert.Zero(t, r.AvgScore)
	})
}
