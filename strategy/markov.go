package strategy

import (
	"fmt"
	"math/rand"

	"lotolab/models"
	"lotolab/stats"
)

func init() {
	register(Spec{
		Name:        "markov",
		Description: "walks a lag-1 transition chain seeded from the latest draw",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return newMarkovStrategy(s, rng)
		},
	})
}

type markovStrategy struct {
	stats *stats.Statistics
	rng   *rand.Rand

	// transition[x][y] counts draws where x appeared and y appeared in the
	// following draw
	numberTransitions map[int]map[int]float64
	starTransitions   map[int]map[int]float64
}

func newMarkovStrategy(s *stats.Statistics, rng *rand.Rand) *markovStrategy {
	g := &markovStrategy{stats: s, rng: rng}
	draws := s.Draws()
	g.numberTransitions = buildTransitions(draws, func(d models.Draw) []int { return d.Numbers })
	g.starTransitions = buildTransitions(draws, func(d models.Draw) []int { return d.Stars })
	return g
}

// buildTransitions counts lag-1 co-occurrences over the recent-first draw
// sequence: draws[i+1] precedes draws[i] in time.
func buildTransitions(draws []models.Draw, picks func(models.Draw) []int) map[int]map[int]float64 {
	transitions := make(map[int]map[int]float64)
	for i := 0; i+1 < len(draws); i++ {
		next := picks(draws[i])
		prev := picks(draws[i+1])
		for _, from := range prev {
			row := transitions[from]
			if row == nil {
				row = make(map[int]float64)
				transitions[from] = row
			}
			for _, to := range next {
				row[to]++
			}
		}
	}
	return transitions
}

func (g *markovStrategy) Name() string { return "markov" }

func (g *markovStrategy) Generate(count int) ([]models.Combination, error) {
	if g.stats.Len() < 2 {
		return nil, fmt.Errorf("markov strategy: need at least 2 draws, have %d", g.stats.Len())
	}

	rules := g.stats.Game().Rules()
	latest := g.stats.Draws()[0]
	numberFallback := toFloatWeights(g.stats.Frequency())
	starFallback := toFloatWeights(g.stats.StarFrequency())

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := g.walk(latest.Numbers, g.numberTransitions, numberFallback, rules.MainCount)
		if err != nil {
			return nil, fmt.Errorf("markov strategy: %w", err)
		}
		stars, err := g.walk(latest.Stars, g.starTransitions, starFallback, rules.StarCount)
		if err != nil {
			return nil, fmt.Errorf("markov strategy: %w", err)
		}

		combos = append(combos, models.Combination{
			Game:     g.stats.Game(),
			Numbers:  numbers,
			Stars:    stars,
			Strategy: g.Name(),
			Score:    g.transitionScore(latest.Numbers, numbers),
		})
	}
	return combos, nil
}

// walk samples count values by accumulating the transition rows of the
// seed states; empty rows fall back to overall frequency
func (g *markovStrategy) walk(seed []int, transitions map[int]map[int]float64, fallback map[int]float64, count int) ([]int, error) {
	weights := make(map[int]float64, len(fallback))
	for v := range fallback {
		weights[v] = 0
	}
	for _, from := range seed {
		for to, c := range transitions[from] {
			weights[to] += c
		}
	}

	hasMass := false
	for _, w := range weights {
		if w > 0 {
			hasMass = true
			break
		}
	}
	if !hasMass {
		weights = fallback
	}
	return weightedSample(g.rng, weights, count)
}

// transitionScore rates picks by the transition mass flowing into them
// from the seed draw, relative to the strongest observed transitions
func (g *markovStrategy) transitionScore(seed, picks []int) float64 {
	maxMass := 0.0
	for _, row := range g.numberTransitions {
		for _, c := range row {
			if c > maxMass {
				maxMass = c
			}
		}
	}
	if maxMass == 0 {
		return 0
	}

	total := 0.0
	for _, p := range picks {
		mass := 0.0
		for _, from := range seed {
			mass += g.numberTransitions[from][p]
		}
		total += mass / (maxMass * float64(len(seed)))
	}
	return clampScore(total / float64(len(picks)) * 100)
}
