package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"lotolab/models"
)

// minWeight keeps never-drawn values reachable when sampling from a
// frequency-derived weight table
const minWeight = 1e-6

// weightedSample draws count unique values from weights without
// replacement, with probability proportional to weight. Non-positive
// weights are clamped to a small epsilon so every value stays reachable.
func weightedSample(rng *rand.Rand, weights map[int]float64, count int) ([]int, error) {
	if count > len(weights) {
		return nil, fmt.Errorf("cannot sample %d values from a pool of %d", count, len(weights))
	}

	// Deterministic iteration order under a fixed seed
	values := make([]int, 0, len(weights))
	for v := range weights {
		values = append(values, v)
	}
	sort.Ints(values)

	remaining := make([]float64, len(values))
	for i, v := range values {
		w := weights[v]
		if w < minWeight {
			w = minWeight
		}
		remaining[i] = w
	}

	picked := make([]int, 0, count)
	for len(picked) < count {
		total := 0.0
		for _, w := range remaining {
			total += w
		}
		target := rng.Float64() * total
		idx := len(values) - 1
		for i, w := range remaining {
			if w <= 0 {
				continue
			}
			target -= w
			if target <= 0 {
				idx = i
				break
			}
		}
		picked = append(picked, values[idx])
		remaining[idx] = 0
	}
	sort.Ints(picked)
	return picked, nil
}

// distributeCounts splits total into len(shares) integer parts proportional
// to shares, using largest-remainder rounding so the parts always sum to
// total.
func distributeCounts(total int, shares []float64) []int {
	counts := make([]int, len(shares))
	if len(shares) == 0 || total <= 0 {
		return counts
	}

	sum := 0.0
	for _, s := range shares {
		if s > 0 {
			sum += s
		}
	}
	if sum == 0 {
		// Degenerate shares: spread evenly
		for i := range counts {
			counts[i] = total / len(shares)
		}
		for i := 0; i < total%len(shares); i++ {
			counts[i]++
		}
		return counts
	}

	type remainder struct {
		idx  int
		frac float64
	}
	assigned := 0
	remainders := make([]remainder, 0, len(shares))
	for i, s := range shares {
		if s < 0 {
			s = 0
		}
		exact := float64(total) * s / sum
		counts[i] = int(exact)
		assigned += counts[i]
		remainders = append(remainders, remainder{idx: i, frac: exact - float64(counts[i])})
	}
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac > remainders[j].frac
	})
	for i := 0; i < total-assigned; i++ {
		counts[remainders[i%len(remainders)].idx]++
	}
	return counts
}

// heuristicScore rates picks against a weight table on a 0-100 scale,
// where 50 means the picks carry exactly average weight
func heuristicScore(weights map[int]float64, picks []int) float64 {
	if len(picks) == 0 || len(weights) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return 0
	}
	mean := total / float64(len(weights))

	score := 0.0
	for _, p := range picks {
		score += weights[p] / mean * 50
	}
	score /= float64(len(picks))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// combinedScore blends number and star heuristic scores, numbers counting
// double like match scoring does
func combinedScore(numberScore, starScore float64) float64 {
	return (2*numberScore + starScore) / 3
}

// clampScore keeps a heuristic score on the 0-100 scale
func clampScore(score float64) float64 {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// sampleCombination draws one combination from number and star weight
// tables and rates it
func sampleCombination(rng *rand.Rand, game models.Game, name string, numberWeights, starWeights map[int]float64) (models.Combination, error) {
	rules := game.Rules()
	numbers, err := weightedSample(rng, numberWeights, rules.MainCount)
	if err != nil {
		return models.Combination{}, fmt.Errorf("sampling numbers: %w", err)
	}
	stars, err := weightedSample(rng, starWeights, rules.StarCount)
	if err != nil {
		return models.Combination{}, fmt.Errorf("sampling %ss: %w", rules.StarLabel, err)
	}
	return models.Combination{
		Game:     game,
		Numbers:  numbers,
		Stars:    stars,
		Strategy: name,
		Score:    combinedScore(heuristicScore(numberWeights, numbers), heuristicScore(starWeights, stars)),
	}, nil
}

// toFloatWeights converts an integer frequency table to float weights
func toFloatWeights(freq map[int]int) map[int]float64 {
	weights := make(map[int]float64, len(freq))
	for k, v := range freq {
		weights[k] = float64(v)
	}
	return weights
}
