package strategy

import (
	"fmt"
	"math/rand"

	"lotolab/models"
	"lotolab/stats"
)

func init() {
	register(Spec{
		Name:        "time_series",
		Description: "favors numbers that are due relative to their historical appearance cycle",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &timeSeriesStrategy{stats: s, rng: rng}
		},
	})
}

type timeSeriesStrategy struct {
	stats *stats.Statistics
	rng   *rand.Rand
}

func (g *timeSeriesStrategy) Name() string { return "time_series" }

func (g *timeSeriesStrategy) Generate(count int) ([]models.Combination, error) {
	rules := g.stats.Game().Rules()

	numberWeights := make(map[int]float64, rules.MainMax)
	for n := 1; n <= rules.MainMax; n++ {
		numberWeights[n] = dueScore(g.stats.GapFor(n))
	}
	starWeights := make(map[int]float64, rules.StarMax)
	for s := 1; s <= rules.StarMax; s++ {
		starWeights[s] = dueScore(g.stats.StarGapFor(s))
	}

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		combo, err := sampleCombination(g.rng, g.stats.Game(), g.Name(), numberWeights, starWeights)
		if err != nil {
			return nil, fmt.Errorf("time series strategy: %w", err)
		}
		combos = append(combos, combo)
	}
	return combos, nil
}

// dueScore rates how overdue a value is relative to its average appearance
// cycle. A value past its average gap scores above 1; never-drawn values
// keep a small constant weight.
func dueScore(gap stats.Gap) float64 {
	if gap.Occurrences == 0 {
		return 0.5
	}
	cycle := gap.AvgGap + 1
	return float64(gap.DrawsSinceLast+1) / cycle
}
