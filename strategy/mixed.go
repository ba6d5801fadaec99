package strategy

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"lotolab/models"
	"lotolab/stats"
)

// defaultHotRatio is the fraction of each combination drawn from the hot
// (high-frequency) pool
const defaultHotRatio = 0.7

func init() {
	register(Spec{
		Name:        "mixed",
		Description: "mixes high-frequency numbers with cold outsiders at a fixed ratio",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &mixedStrategy{stats: s, rng: rng, hotRatio: defaultHotRatio}
		},
	})
}

type mixedStrategy struct {
	stats    *stats.Statistics
	rng      *rand.Rand
	hotRatio float64
}

func (g *mixedStrategy) Name() string { return "mixed" }

func (g *mixedStrategy) Generate(count int) ([]models.Combination, error) {
	rules := g.stats.Game().Rules()
	numberFreq := g.stats.Frequency()
	starFreq := g.stats.StarFrequency()

	hotNumbers, coldNumbers := splitHotCold(numberFreq, g.hotRatio)
	hotStars, coldStars := splitHotCold(starFreq, 0.3)

	hotCount := int(float64(rules.MainCount) * g.hotRatio)
	coldCount := rules.MainCount - hotCount

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := g.pickMix(hotNumbers, coldNumbers, hotCount, coldCount)
		if err != nil {
			return nil, fmt.Errorf("mixed strategy: %w", err)
		}

		// One hot star when the game has two; otherwise the single pick
		// comes from the hot pool.
		starHot := 1
		starCold := rules.StarCount - starHot
		stars, err := g.pickMix(hotStars, coldStars, starHot, starCold)
		if err != nil {
			return nil, fmt.Errorf("mixed strategy: %w", err)
		}

		numberWeights := toFloatWeights(numberFreq)
		starWeights := toFloatWeights(starFreq)
		score := combinedScore(heuristicScore(numberWeights, numbers), heuristicScore(starWeights, stars))
		combos = append(combos, models.Combination{
			Game:     g.stats.Game(),
			Numbers:  numbers,
			Stars:    stars,
			Strategy: g.Name(),
			Score:    clampScore(score + diversityBonus(numbers)),
		})
	}
	return combos, nil
}

// pickMix draws hotCount values from the hot pool and coldCount from the
// cold pool, backfilling from the other pool when one runs short
func (g *mixedStrategy) pickMix(hot, cold []int, hotCount, coldCount int) ([]int, error) {
	if hotCount > len(hot) {
		coldCount += hotCount - len(hot)
		hotCount = len(hot)
	}
	if coldCount > len(cold) {
		hotCount += coldCount - len(cold)
		coldCount = len(cold)
	}
	if hotCount > len(hot) {
		return nil, fmt.Errorf("pools too small for %d+%d picks", hotCount, coldCount)
	}

	picks := append(samplePool(g.rng, hot, hotCount), samplePool(g.rng, cold, coldCount)...)
	sort.Ints(picks)
	return picks, nil
}

// splitHotCold partitions values into hot (top hotShare by frequency) and
// cold pools
func splitHotCold(freq map[int]int, hotShare float64) (hot, cold []int) {
	values := make([]int, 0, len(freq))
	for v := range freq {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if freq[values[i]] != freq[values[j]] {
			return freq[values[i]] > freq[values[j]]
		}
		return values[i] < values[j]
	})

	cut := int(float64(len(values)) * hotShare)
	if cut < 1 {
		cut = 1
	}
	hot = values[:cut]
	cold = values[cut:]
	return hot, cold
}

// samplePool picks count distinct values uniformly from pool
func samplePool(rng *rand.Rand, pool []int, count int) []int {
	shuffled := make([]int, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

// diversityBonus rewards spread-out picks, capped at 5 points
func diversityBonus(numbers []int) float64 {
	if len(numbers) < 2 {
		return 0
	}
	mean := 0.0
	for _, n := range numbers {
		mean += float64(n)
	}
	mean /= float64(len(numbers))
	variance := 0.0
	for _, n := range numbers {
		diff := float64(n) - mean
		variance += diff * diff
	}
	stdDev := math.Sqrt(variance / float64(len(numbers)))
	bonus := stdDev / 3
	if bonus > 5 {
		bonus = 5
	}
	return bonus
}
