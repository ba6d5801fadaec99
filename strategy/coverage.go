package strategy

import (
	"fmt"
	"math/rand"

	"lotolab/models"
	"lotolab/stats"
)

// Reweighting factors for the coverage strategy: numbers already placed in
// an earlier combination of the batch are damped, fresh ones boosted
const (
	coveredFactor   = 0.3
	uncoveredFactor = 3.0
)

func init() {
	register(Spec{
		Name:        "coverage",
		Description: "spreads combinations across the number space, boosting uncovered values",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &coverageStrategy{stats: s, rng: rng}
		},
	})
}

type coverageStrategy struct {
	stats *stats.Statistics
	rng   *rand.Rand
}

func (g *coverageStrategy) Name() string { return "coverage" }

func (g *coverageStrategy) Generate(count int) ([]models.Combination, error) {
	rules := g.stats.Game().Rules()
	numberFreq := toFloatWeights(g.stats.Frequency())
	starFreq := toFloatWeights(g.stats.StarFrequency())

	coveredNumbers := make(map[int]bool)
	coveredStars := make(map[int]bool)

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		numberWeights := numberFreq
		starWeights := starFreq
		if i > 0 {
			numberWeights = reweightCovered(numberFreq, coveredNumbers)
			starWeights = reweightCovered(starFreq, coveredStars)
		}

		numbers, err := weightedSample(g.rng, numberWeights, rules.MainCount)
		if err != nil {
			return nil, fmt.Errorf("coverage strategy: %w", err)
		}
		stars, err := weightedSample(g.rng, starWeights, rules.StarCount)
		if err != nil {
			return nil, fmt.Errorf("coverage strategy: %w", err)
		}

		for _, n := range numbers {
			coveredNumbers[n] = true
		}
		for _, s := range stars {
			coveredStars[s] = true
		}

		// Coverage counts for more as the batch grows
		numberCoverage := float64(len(coveredNumbers)) / float64(rules.MainMax)
		starCoverage := float64(len(coveredStars)) / float64(rules.StarMax)
		coverageWeight := 0.2 + float64(i)*0.15
		if coverageWeight > 0.8 {
			coverageWeight = 0.8
		}
		freqScore := combinedScore(heuristicScore(numberFreq, numbers), heuristicScore(starFreq, stars))
		score := coverageWeight*(numberCoverage+starCoverage)/2*100 + (1-coverageWeight)*freqScore

		combos = append(combos, models.Combination{
			Game:     g.stats.Game(),
			Numbers:  numbers,
			Stars:    stars,
			Strategy: g.Name(),
			Score:    clampScore(score),
		})
	}
	return combos, nil
}

// reweightCovered damps already-covered values and boosts the rest
func reweightCovered(base map[int]float64, covered map[int]bool) map[int]float64 {
	weights := make(map[int]float64, len(base))
	for v, w := range base {
		if covered[v] {
			weights[v] = w * coveredFactor
		} else {
			weights[v] = w * uncoveredFactor
		}
	}
	return weights
}
