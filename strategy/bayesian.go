package strategy

import (
	"fmt"
	"math"
	"math/rand"

	"lotolab/models"
	"lotolab/stats"
)

// PriorType selects the prior distribution for the Bayesian strategy
type PriorType string

const (
	PriorEmpirical PriorType = "empirical" // historical frequencies
	PriorUniform   PriorType = "uniform"   // flat over the number space
)

// Defaults follow the classic setup: empirical prior updated with the last
// 20 draws under mild Laplace smoothing
const (
	defaultRecentDraws     = 20
	defaultSmoothingFactor = 0.1
	defaultDecayRate       = 0.95
)

func init() {
	register(Spec{
		Name:        "bayesian",
		Description: "samples from a posterior over numbers updated with recent draws",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &bayesianStrategy{
				stats:       s,
				rng:         rng,
				prior:       PriorEmpirical,
				recentDraws: defaultRecentDraws,
				smoothing:   defaultSmoothingFactor,
				adaptive:    false,
			}
		},
	})
}

type bayesianStrategy struct {
	stats       *stats.Statistics
	rng         *rand.Rand
	prior       PriorType
	recentDraws int
	smoothing   float64
	adaptive    bool // time-decayed updates instead of flat counts
}

func (g *bayesianStrategy) Name() string { return "bayesian" }

func (g *bayesianStrategy) Generate(count int) ([]models.Combination, error) {
	rules := g.stats.Game().Rules()
	numberPosterior := g.posterior(g.stats.Frequency(), rules.MainMax, func(d models.Draw) []int { return d.Numbers })
	starPosterior := g.posterior(g.stats.StarFrequency(), rules.StarMax, func(d models.Draw) []int { return d.Stars })

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		combo, err := sampleCombination(g.rng, g.stats.Game(), g.Name(), numberPosterior, starPosterior)
		if err != nil {
			return nil, fmt.Errorf("bayesian strategy: %w", err)
		}
		combos = append(combos, combo)
	}
	return combos, nil
}

// posterior combines the prior with evidence from the recent draw window.
// Laplace smoothing keeps never-drawn values alive; in adaptive mode each
// observation is discounted by its age.
func (g *bayesianStrategy) posterior(freq map[int]int, max int, picks func(models.Draw) []int) map[int]float64 {
	prior := make(map[int]float64, max)
	total := 0
	for _, c := range freq {
		total += c
	}
	for v := 1; v <= max; v++ {
		switch g.prior {
		case PriorUniform:
			prior[v] = 1.0 / float64(max)
		default:
			if total > 0 {
				prior[v] = (float64(freq[v]) + g.smoothing) / (float64(total) + g.smoothing*float64(max))
			} else {
				prior[v] = 1.0 / float64(max)
			}
		}
	}

	window := g.recentDraws
	if window > g.stats.Len() {
		window = g.stats.Len()
	}
	if window == 0 {
		return prior
	}

	evidence := make(map[int]float64, max)
	evidenceTotal := 0.0
	for i, d := range g.stats.Draws()[:window] {
		weight := 1.0
		if g.adaptive {
			weight = math.Pow(defaultDecayRate, float64(i))
		}
		for _, v := range picks(d) {
			evidence[v] += weight
			evidenceTotal += weight
		}
	}

	posterior := make(map[int]float64, max)
	for v := 1; v <= max; v++ {
		likelihood := (evidence[v] + g.smoothing) / (evidenceTotal + g.smoothing*float64(max))
		posterior[v] = prior[v] * likelihood
	}
	return normalizeWeights(posterior)
}
