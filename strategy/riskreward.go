package strategy

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"lotolab/models"
	"lotolab/stats"
)

// defaultRiskFactor sits in the middle of the 0..1 risk scale
const defaultRiskFactor = 0.5

func init() {
	register(Spec{
		Name:        "risk_reward",
		Description: "trades hit probability for payout by favoring rare numbers and sums at high risk",
		Factory: func(s *stats.Statistics, rng *rand.Rand) Generator {
			return &riskRewardStrategy{stats: s, rng: rng, risk: defaultRiskFactor}
		},
	})
}

type riskRewardStrategy struct {
	stats *stats.Statistics
	rng   *rand.Rand
	risk  float64 // 0.0 conservative .. 1.0 risky
}

// NewRiskReward builds the strategy at an explicit risk level. Values above
// 1 are read as the legacy 1..10 scale and divided down.
func NewRiskReward(s *stats.Statistics, rng *rand.Rand, risk float64) Generator {
	return &riskRewardStrategy{stats: s, rng: rng, risk: normalizeRisk(risk)}
}

func normalizeRisk(risk float64) float64 {
	if risk > 1 {
		risk = risk / 10
	}
	if risk < 0 {
		return 0
	}
	if risk > 1 {
		return 1
	}
	return risk
}

func (g *riskRewardStrategy) Name() string { return "risk_reward" }

func (g *riskRewardStrategy) Generate(count int) ([]models.Combination, error) {
	rules := g.stats.Game().Rules()
	numberShares := normalizeWeights(toFloatWeights(g.stats.Frequency()))
	starShares := normalizeWeights(toFloatWeights(g.stats.StarFrequency()))
	sumDist := g.stats.SumDistribution()

	combos := make([]models.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := weightedSample(g.rng, g.riskWeights(numberShares), rules.MainCount)
		if err != nil {
			return nil, fmt.Errorf("risk/reward strategy: %w", err)
		}
		stars, err := weightedSample(g.rng, g.riskWeights(starShares), rules.StarCount)
		if err != nil {
			return nil, fmt.Errorf("risk/reward strategy: %w", err)
		}

		// At high risk, push the sum out of the most common buckets
		if g.risk > 0.5 && g.rng.Float64() < g.risk {
			numbers = g.escapeCommonSum(numbers, sumDist, rules.MainMax)
		}

		combos = append(combos, models.Combination{
			Game:     g.stats.Game(),
			Numbers:  numbers,
			Stars:    stars,
			Strategy: g.Name(),
			Score:    g.score(numbers, stars, numberShares, starShares, sumDist),
		})
	}
	return combos, nil
}

// riskWeights derives sampling weights from normalized frequency shares.
// Above risk 0.5 the shares are inverted so rare values dominate; below,
// the shares are jittered in proportion to the risk.
func (g *riskRewardStrategy) riskWeights(shares map[int]float64) map[int]float64 {
	weights := make(map[int]float64, len(shares))
	if g.risk > 0.5 {
		for v, share := range shares {
			weights[v] = 1 - share*g.risk
		}
		return weights
	}
	jitter := g.risk * 2
	for v, share := range shares {
		weights[v] = share*(1-jitter) + jitter*g.rng.Float64()
	}
	return weights
}

// escapeCommonSum swaps one number to move the sum out of the three most
// common sum buckets, keeping the original picks when no swap works
func (g *riskRewardStrategy) escapeCommonSum(numbers []int, dist stats.SumStats, mainMax int) []int {
	if !inCommonBucket(sumInts(numbers), dist) {
		return numbers
	}

	for attempt := 0; attempt < 20; attempt++ {
		candidate := make([]int, len(numbers))
		copy(candidate, numbers)

		replaceIdx := g.rng.Intn(len(candidate))
		replacement := g.rng.Intn(mainMax) + 1
		if containsInt(candidate, replacement) {
			continue
		}
		candidate[replaceIdx] = replacement
		if !inCommonBucket(sumInts(candidate), dist) {
			sort.Ints(candidate)
			return candidate
		}
	}
	return numbers
}

// inCommonBucket reports whether sum falls into one of the three
// highest-share sum buckets
func inCommonBucket(sum int, dist stats.SumStats) bool {
	buckets := make([]stats.SumBucket, len(dist.Buckets))
	copy(buckets, dist.Buckets)
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Share > buckets[j].Share
	})
	top := 3
	if top > len(buckets) {
		top = len(buckets)
	}
	for _, b := range buckets[:top] {
		if b.Lo <= sum && sum <= b.Hi {
			return true
		}
	}
	return false
}

func (g *riskRewardStrategy) score(numbers, stars []int, numberShares, starShares map[int]float64, dist stats.SumStats) float64 {
	if g.risk <= 0.5 {
		// Conservative: frequent picks score high
		avg := (avgShare(numberShares, numbers) + avgShare(starShares, stars)) / 2
		return clampScore(avg * float64(len(numberShares)) * 50)
	}

	// Risky: uniqueness scores high
	sumShare := 0.0
	total := sumInts(numbers)
	for _, b := range dist.Buckets {
		if b.Lo <= total && total <= b.Hi {
			sumShare = b.Share
			break
		}
	}
	uniqueness := 1 - avgShare(numberShares, numbers)*float64(len(numberShares))
	if uniqueness < 0 {
		uniqueness = 0
	}
	gapVariability := spacingStdDev(numbers) / 10
	if gapVariability > 1 {
		gapVariability = 1
	}
	return clampScore((0.4*uniqueness + 0.4*(1-sumShare) + 0.2*gapVariability) * 100)
}

// normalizeWeights scales weights so they sum to 1
func normalizeWeights(weights map[int]float64) map[int]float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	out := make(map[int]float64, len(weights))
	if total == 0 {
		uniform := 1.0 / float64(len(weights))
		for v := range weights {
			out[v] = uniform
		}
		return out
	}
	for v, w := range weights {
		out[v] = w / total
	}
	return out
}

func avgShare(shares map[int]float64, picks []int) float64 {
	if len(picks) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range picks {
		total += shares[p]
	}
	return total / float64(len(picks))
}

func sumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// spacingStdDev measures how uneven the gaps between sorted picks are
func spacingStdDev(numbers []int) float64 {
	if len(numbers) < 3 {
		return 0
	}
	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)

	gaps := make([]float64, 0, len(sorted)-1)
	mean := 0.0
	for i := 0; i+1 < len(sorted); i++ {
		gap := float64(sorted[i+1] - sorted[i])
		gaps = append(gaps, gap)
		mean += gap
	}
	mean /= float64(len(gaps))

	variance := 0.0
	for _, gap := range gaps {
		diff := gap - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(gaps)))
}
