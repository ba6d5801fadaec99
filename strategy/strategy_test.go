package strategy

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotolab/models"
	"lotolab/stats"
)

func historyFor(t *testing.T, game models.Game, draws int) *stats.Statistics {
	t.Helper()
	rules := game.Rules()
	rng := rand.New(rand.NewSource(99))

	history := make([]models.Draw, 0, draws)
	for i := 0; i < draws; i++ {
		d := models.Draw{
			Game:    game,
			Date:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*3),
			Numbers: randomPicks(rng, rules.MainCount, rules.MainMax),
			Stars:   randomPicks(rng, rules.StarCount, rules.StarMax),
		}
		require.NoError(t, d.Validate())
		history = append(history, d)
	}
	return stats.New(game, history)
}

func randomPicks(rng *rand.Rand, count, max int) []int {
	picked := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		v := rng.Intn(max) + 1
		if !picked[v] {
			picked[v] = true
			out = append(out, v)
		}
	}
	return out
}

func TestRegistry(t *testing.T) {
	t.Run("all strategies registered", func(t *testing.T) {
		names := Names()
		assert.Len(t, names, 9)
		assert.Contains(t, names, "frequency")
		assert.Contains(t, names, "mixed")
		assert.Contains(t, names, "stratified")
		assert.Contains(t, names, "coverage")
		assert.Contains(t, names, "risk_reward")
		assert.Contains(t, names, "anti_bias")
		assert.Contains(t, names, "markov")
		assert.Contains(t, names, "bayesian")
		assert.Contains(t, names, "time_series")
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		s := historyFor(t, models.GameEuromillions, 10)
		_, err := New("astrology", s, rand.New(rand.NewSource(1)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown strategy")
	})

	t.Run("generator name matches registry name", func(t *testing.T) {
		s := historyFor(t, models.GameEuromillions, 10)
		for _, name := range Names() {
			gen, err := New(name, s, rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			assert.Equal(t, name, gen.Name())
		}
	})
}

func TestGenerateAllStrategies(t *testing.T) {
	for _, game := range []models.Game{models.GameEuromillions, models.GameFrenchLoto} {
		t.Run(string(game), func(t *testing.T) {
			s := historyFor(t, game, 60)
			for _, spec := range AllSpecs() {
				t.Run(spec.Name, func(t *testing.T) {
					gen := spec.Factory(s, rand.New(rand.NewSource(42)))
					combos, err := gen.Generate(5)
					require.NoError(t, err)
					require.Len(t, combos, 5)

					for _, c := range combos {
						assert.NoError(t, c.Validate(), "combination %s", c.String())
						assert.Equal(t, game, c.Game)
						assert.Equal(t, spec.Name, c.Strategy)
						assert.GreaterOrEqual(t, c.Score, 0.0)
						assert.LessOrEqual(t, c.Score, 100.0)
						assert.IsIncreasing(t, c.Numbers)
					}
				})
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	s := historyFor(t, models.GameEuromillions, 60)
	for _, spec := range AllSpecs() {
		t.Run(spec.Name, func(t *testing.T) {
			first, err := spec.Factory(s, rand.New(rand.NewSource(7))).Generate(3)
			require.NoError(t, err)
			second, err := spec.Factory(s, rand.New(rand.NewSource(7))).Generate(3)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestFrequencyStrategyFavorsFrequentNumbers(t *testing.T) {
	// History where a fixed set dominates: the hot set should appear far
	// more often than chance in the output.
	hot := []int{3, 14, 21, 33, 48}
	var draws []models.Draw
	for i := 0; i < 40; i++ {
		draws = append(draws, models.Draw{
			Game:    models.GameEuromillions,
			Date:    time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Numbers: hot,
			Stars:   []int{2, 9},
		})
	}
	s := stats.New(models.GameEuromillions, draws)

	gen, err := New("frequency", s, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	combos, err := gen.Generate(20)
	require.NoError(t, err)

	hits := 0
	for _, c := range combos {
		for _, n := range c.Numbers {
			for _, h := range hot {
				if n == h {
					hits++
				}
			}
		}
	}
	// 100 picks total; uniform sampling would land ~10 in the hot set
	assert.Greater(t, hits, 60)
}

func TestMarkovStrategyNeedsHistory(t *testing.T) {
	s := historyFor(t, models.GameEuromillions, 1)
	gen, err := New("markov", s, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = gen.Generate(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 draws")
}

func TestRiskRewardRiskScale(t *testing.T) {
	t.Run("legacy 1..10 scale divided down", func(t *testing.T) {
		assert.InDelta(t, 0.8, normalizeRisk(8), 1e-9)
		assert.InDelta(t, 1.0, normalizeRisk(10), 1e-9)
	})

	t.Run("fractional risk kept", func(t *testing.T) {
		assert.InDelta(t, 0.3, normalizeRisk(0.3), 1e-9)
	})

	t.Run("clamped to 0..1", func(t *testing.T) {
		assert.Equal(t, 0.0, normalizeRisk(-2))
		assert.Equal(t, 1.0, normalizeRisk(25))
	})

	t.Run("explicit risk generates valid combinations", func(t *testing.T) {
		s := historyFor(t, models.GameEuromillions, 60)
		gen := NewRiskReward(s, rand.New(rand.NewSource(17)), 9)
		combos, err := gen.Generate(4)
		require.NoError(t, err)
		require.Len(t, combos, 4)
		for _, c := range combos {
			assert.NoError(t, c.Validate())
		}
	})
}

func TestCoverageStrategySpreadsNumbers(t *testing.T) {
	s := historyFor(t, models.GameEuromillions, 60)
	gen, err := New("coverage", s, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	combos, err := gen.Generate(6)
	require.NoError(t, err)

	distinct := make(map[int]bool)
	for _, c := range combos {
		for _, n := range c.Numbers {
			distinct[n] = true
		}
	}
	// 30 picks; heavy reuse would leave far fewer distinct values
	assert.GreaterOrEqual(t, len(distinct), 20)
}

func TestWeightedSample(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	t.Run("returns unique sorted values", func(t *testing.T) {
		weights := map[int]float64{}
		for v := 1; v <= 50; v++ {
			weights[v] = float64(v)
		}
		picks, err := weightedSample(rng, weights, 5)
		require.NoError(t, err)
		require.Len(t, picks, 5)
		assert.IsIncreasing(t, picks)
		seen := map[int]bool{}
		for _, p := range picks {
			assert.False(t, seen[p])
			seen[p] = true
		}
	})

	t.Run("zero weights stay reachable", func(t *testing.T) {
		weights := map[int]float64{1: 0, 2: 0, 3: 0}
		picks, err := weightedSample(rng, weights, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, picks)
	})

	t.Run("pool too small", func(t *testing.T) {
		_, err := weightedSample(rng, map[int]float64{1: 1}, 2)
		require.Error(t, err)
	})

	t.Run("heavy weight dominates", func(t *testing.T) {
		weights := map[int]float64{1: 1000, 2: 0.001, 3: 0.001}
		hits := 0
		for i := 0; i < 50; i++ {
			picks, err := weightedSample(rng, weights, 1)
			require.NoError(t, err)
			if picks[0] == 1 {
				hits++
			}
		}
		assert.Greater(t, hits, 45)
	})
}

func TestDistributeCounts(t *testing.T) {
	t.Run("sums to total", func(t *testing.T) {
		for _, shares := range [][]float64{
			{0.2, 0.3, 0.5},
			{0.1, 0.1, 0.1, 0.1, 0.6},
			{1, 1, 1},
		} {
			t.Run(fmt.Sprintf("%v", shares), func(t *testing.T) {
				counts := distributeCounts(5, shares)
				total := 0
				for _, c := range counts {
					total += c
				}
				assert.Equal(t, 5, total)
			})
		}
	})

	t.Run("proportional split", func(t *testing.T) {
		counts := distributeCounts(10, []float64{0.5, 0.5})
		assert.Equal(t, []int{5, 5}, counts)
	})

	t.Run("zero shares spread evenly", func(t *testing.T) {
		counts := distributeCounts(5, []float64{0, 0})
		assert.Equal(t, []int{3, 2}, counts)
	})

	t.Run("empty shares", func(t *testing.T) {
		assert.Empty(t, distributeCounts(5, nil))
	})
}

func TestHeuristicScore(t *testing.T) {
	t.Run("average picks score 50", func(t *testing.T) {
		weights := map[int]float64{1: 2, 2: 2, 3: 2, 4: 2}
		assert.InDelta(t, 50.0, heuristicScore(weights, []int{1, 3}), 1e-9)
	})

	t.Run("above-average picks score higher", func(t *testing.T) {
		weights := map[int]float64{1: 10, 2: 1, 3: 1, 4: 1}
		assert.Greater(t, heuristicScore(weights, []int{1}), 50.0)
	})

	t.Run("clamped to 100", func(t *testing.T) {
		weights := map[int]float64{1: 1000, 2: 1, 3: 1}
		assert.Equal(t, 100.0, heuristicScore(weights, []int{1}))
	})
}
