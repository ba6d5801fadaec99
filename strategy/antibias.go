package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"lotolab/models"
	"lotolab/stats"
)

// Human players cluster on birthdays and "lucky" picks. Boosting numbers
// above the birthday range and superstition-avoided values reduces the odds
// of splitting a prize.
const (
	birthdayCutoff    = 31
	overBirthdayBoost = 1.3
	unpopularBoost    = 1.2
)

var (
	unpopularNumbers = map[int]bool{4: true, 13: true, 17: true, 39: true, 40: true, 44: true}
	unpopularStars   = map[int]bool{1: true, 4: true, 7: true, 8: true}
)

func init() {
	register(Spec{
		Name:        "anti_bias",
		Description: "avoids combinations popular with human players to reduce prize splitting",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &antiBiasStrategy{stats: s, rng: rng}
		},
	})
}

type antiBiasStrategy struct {
	stats *stats.Statistics
	rng   *rand.Rand
}

func (g *antiBiasStrategy) Name() string { return "anti_bias" }

func (g *antiBiasStrategy) Generate(count int) ([]models.Combination, error) {
	rules := g.stats.Game().Rules()

	numberWeights := make(map[int]float64, rules.MainMax)
	for n, freq := range g.stats.Frequency() {
		w := float64(freq)
		if n > birthdayCutoff {
			w *= overBirthdayBoost
		}
		if unpopularNumbers[n] {
			w *= unpopularBoost
		}
		numberWeights[n] = w
	}

	starWeights := make(map[int]float64, rules.StarMax)
	for s, freq := range g.stats.StarFrequency() {
		w := float64(freq)
		if unpopularStars[s] {
			w *= unpopularBoost
		}
		starWeights[s] = w
	}

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := weightedSample(g.rng, numberWeights, rules.MainCount)
		if err != nil {
			return nil, fmt.Errorf("anti-bias strategy: %w", err)
		}
		stars, err := weightedSample(g.rng, starWeights, rules.StarCount)
		if err != nil {
			return nil, fmt.Errorf("anti-bias strategy: %w", err)
		}

		combos = append(combos, models.Combination{
			Game:     g.stats.Game(),
			Numbers:  numbers,
			Stars:    stars,
			Strategy: g.Name(),
			Score:    antiBiasScore(numbers, rules.MainMax),
		})
	}
	return combos, nil
}

// antiBiasScore rates how unlikely the picks are to be shared with human
// players: odd sums, no consecutive runs, and a high/low mix all score.
// The factors sum to at most 1.3 and are normalized to 100.
func antiBiasScore(numbers []int, mainMax int) float64 {
	total := sumInts(numbers)

	sumScore := 0.5
	if total%10 != 0 {
		sumScore += 0.15
	}
	if total%5 != 0 {
		sumScore += 0.1
	}

	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)
	patternScore := 0.2
	consecutive := false
	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i+1]-sorted[i] == 1 {
			consecutive = true
			break
		}
	}
	if !consecutive {
		patternScore += 0.15
	}

	distributionScore := 0.0
	lowHalf := 0
	for _, n := range numbers {
		if n <= mainMax/2 {
			lowHalf++
		}
	}
	if lowHalf == 2 || lowHalf == 3 {
		distributionScore = 0.2
	}

	return clampScore((sumScore + patternScore + distributionScore) / 1.3 * 100)
}
