package strategy

import (
	"fmt"
	"math/rand"

	"lotolab/models"
	"lotolab/stats"
)

// defaultRecentWeight controls how much the frequency strategy favors the
// most recent draws over the full history
const defaultRecentWeight = 0.6

func init() {
	register(Spec{
		Name:        "frequency",
		Description: "samples numbers proportional to recency-weighted draw frequency",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &frequencyStrategy{stats: s, rng: rng, recentWeight: defaultRecentWeight}
		},
	})
}

type frequencyStrategy struct {
	stats        *stats.Statistics
	rng          *rand.Rand
	recentWeight float64
}

func (g *frequencyStrategy) Name() string { return "frequency" }

func (g *frequencyStrategy) Generate(count int) ([]models.Combination, error) {
	numberWeights := g.stats.WeightedFrequency(g.recentWeight)
	starWeights := g.stats.WeightedStarFrequency(g.recentWeight)

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		combo, err := sampleCombination(g.rng, g.stats.Game(), g.Name(), numberWeights, starWeights)
		if err != nil {
			return nil, fmt.Errorf("frequency strategy: %w", err)
		}
		combos = append(combos, combo)
	}
	return combos, nil
}
