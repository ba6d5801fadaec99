package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"lotolab/models"
	"lotolab/stats"
)

// defaultBalanceFactor blends historical stratum shares with a uniform
// split: 1.0 follows history, 0.0 splits evenly
const defaultBalanceFactor = 0.7

// StrataType selects how the stratified strategy partitions the number space
type StrataType string

const (
	StrataRange   StrataType = "range"
	StrataEvenOdd StrataType = "even_odd"
	StrataPrime   StrataType = "prime"
	StrataHotCold StrataType = "hot_cold"
)

func init() {
	register(Spec{
		Name:        "stratified",
		Description: "stratified sampling across number ranges matching historical shares",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &stratifiedStrategy{stats: s, rng: rng, strata: StrataRange, balanceFactor: defaultBalanceFactor}
		},
	})
}

type stratifiedStrategy struct {
	stats         *stats.Statistics
	rng           *rand.Rand
	strata        StrataType
	balanceFactor float64
}

func (g *stratifiedStrategy) Name() string { return "stratified" }

// stratum is one partition of the number space with its target share
type stratum struct {
	members []int
	share   float64
}

func (g *stratifiedStrategy) Generate(count int) ([]models.Combination, error) {
	strata, err := g.buildStrata()
	if err != nil {
		return nil, fmt.Errorf("stratified strategy: %w", err)
	}

	rules := g.stats.Game().Rules()
	numberFreq := toFloatWeights(g.stats.Frequency())
	starWeights := g.stats.WeightedStarFrequency(0.3)

	// Blend historical shares with a uniform split per the balance factor
	shares := make([]float64, len(strata))
	for i, st := range strata {
		uniform := 1.0 / float64(len(strata))
		shares[i] = g.balanceFactor*st.share + (1-g.balanceFactor)*uniform
	}

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		counts := distributeCounts(rules.MainCount, shares)

		var numbers []int
		for j, st := range strata {
			if counts[j] == 0 {
				continue
			}
			want := counts[j]
			if want > len(st.members) {
				want = len(st.members)
			}
			weights := make(map[int]float64, len(st.members))
			for _, n := range st.members {
				weights[n] = numberFreq[n]
			}
			picks, err := weightedSample(g.rng, weights, want)
			if err != nil {
				return nil, fmt.Errorf("stratified strategy: %w", err)
			}
			numbers = append(numbers, picks...)
		}

		// Backfill when small strata could not satisfy their quota
		for len(numbers) < rules.MainCount {
			n := g.rng.Intn(rules.MainMax) + 1
			if !containsInt(numbers, n) {
				numbers = append(numbers, n)
			}
		}
		sort.Ints(numbers)

		stars, err := weightedSample(g.rng, starWeights, rules.StarCount)
		if err != nil {
			return nil, fmt.Errorf("stratified strategy: %w", err)
		}

		combos = append(combos, models.Combination{
			Game:     g.stats.Game(),
			Numbers:  numbers,
			Stars:    stars,
			Strategy: g.Name(),
			Score:    g.similarityScore(numbers, strata),
		})
	}
	return combos, nil
}

// buildStrata partitions 1..MainMax per the configured strata type, with
// each stratum's historical share of drawn numbers
func (g *stratifiedStrategy) buildStrata() ([]stratum, error) {
	rules := g.stats.Game().Rules()
	freq := g.stats.Frequency()

	var groups [][]int
	switch g.strata {
	case StrataRange:
		for lo := 1; lo <= rules.MainMax; lo += 10 {
			hi := lo + 9
			if hi > rules.MainMax {
				hi = rules.MainMax
			}
			group := make([]int, 0, 10)
			for n := lo; n <= hi; n++ {
				group = append(group, n)
			}
			groups = append(groups, group)
		}
	case StrataEvenOdd:
		var even, odd []int
		for n := 1; n <= rules.MainMax; n++ {
			if n%2 == 0 {
				even = append(even, n)
			} else {
				odd = append(odd, n)
			}
		}
		groups = [][]int{even, odd}
	case StrataPrime:
		var prime, composite []int
		for n := 1; n <= rules.MainMax; n++ {
			if isPrime(n) {
				prime = append(prime, n)
			} else {
				composite = append(composite, n)
			}
		}
		groups = [][]int{prime, composite}
	case StrataHotCold:
		hot, cold := splitHotCold(freq, 0.4)
		groups = [][]int{hot, cold}
	default:
		return nil, fmt.Errorf("unknown strata type %q", g.strata)
	}

	total := 0
	for _, count := range freq {
		total += count
	}

	strata := make([]stratum, len(groups))
	for i, group := range groups {
		st := stratum{members: group}
		if total > 0 {
			drawn := 0
			for _, n := range group {
				drawn += freq[n]
			}
			st.share = float64(drawn) / float64(total)
		} else {
			st.share = float64(len(group)) / float64(rules.MainMax)
		}
		strata[i] = st
	}
	return strata, nil
}

// similarityScore rates how closely the picked numbers match the
// historical stratum distribution, via L1 distance
func (g *stratifiedStrategy) similarityScore(numbers []int, strata []stratum) float64 {
	distance := 0.0
	for _, st := range strata {
		picked := 0
		for _, n := range numbers {
			if containsInt(st.members, n) {
				picked++
			}
		}
		actual := float64(picked) / float64(len(numbers))
		distance += absFloat(actual - st.share)
	}
	// Max L1 distance between two distributions is 2
	return clampScore((1 - distance/2) * 100)
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
