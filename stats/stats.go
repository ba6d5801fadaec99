package stats

import (
	"math"
	"sort"

	"lotolab/models"
)

// Statistics holds frequency and distribution metrics computed over a set
// of historical draws for one game. Draws are kept sorted most recent
// first; every "recent" computation relies on that ordering.
type Statistics struct {
	game  models.Game
	rules models.Rules
	draws []models.Draw

	numberFreq map[int]int
	starFreq   map[int]int
}

// New computes statistics over the given draws. The input slice is copied
// and sorted by date descending.
func New(game models.Game, draws []models.Draw) *Statistics {
	s := &Statistics{
		game:  game,
		rules: game.Rules(),
		draws: make([]models.Draw, len(draws)),
	}
	copy(s.draws, draws)
	sort.Slice(s.draws, func(i, j int) bool {
		return s.draws[i].Date.After(s.draws[j].Date)
	})

	s.numberFreq = countOccurrences(s.draws, s.rules.MainMax, mainPicks)
	s.starFreq = countOccurrences(s.draws, s.rules.StarMax, starPicks)
	return s
}

func mainPicks(d models.Draw) []int { return d.Numbers }
func starPicks(d models.Draw) []int { return d.Stars }

// countOccurrences tallies picks over all draws, with zeros filled for the
// full 1..max range
func countOccurrences(draws []models.Draw, max int, picks func(models.Draw) []int) map[int]int {
	freq := make(map[int]int, max)
	for v := 1; v <= max; v++ {
		freq[v] = 0
	}
	for _, d := range draws {
		for _, v := range picks(d) {
			freq[v]++
		}
	}
	return freq
}

// Game returns the game these statistics were computed for
func (s *Statistics) Game() models.Game { return s.game }

// Len returns the number of draws in the sample
func (s *Statistics) Len() int { return len(s.draws) }

// Draws returns the draws sorted most recent first. Callers must not
// modify the returned slice.
func (s *Statistics) Draws() []models.Draw { return s.draws }

// Frequency returns a copy of the all-time frequency table for main numbers
func (s *Statistics) Frequency() map[int]int {
	return copyIntMap(s.numberFreq)
}

// StarFrequency returns a copy of the all-time frequency table for stars
func (s *Statistics) StarFrequency() map[int]int {
	return copyIntMap(s.starFreq)
}

// NumberFrequency returns how often a single main number was drawn
func (s *Statistics) NumberFrequency(n int) int { return s.numberFreq[n] }

// HotNumbers returns the count most frequent main numbers
func (s *Statistics) HotNumbers(count int) []int {
	return topKeys(s.numberFreq, count, true)
}

// ColdNumbers returns the count least frequent main numbers
func (s *Statistics) ColdNumbers(count int) []int {
	return topKeys(s.numberFreq, count, false)
}

// HotStars returns the count most frequent stars
func (s *Statistics) HotStars(count int) []int {
	return topKeys(s.starFreq, count, true)
}

// ColdStars returns the count least frequent stars
func (s *Statistics) ColdStars(count int) []int {
	return topKeys(s.starFreq, count, false)
}

// WeightedFrequency blends the all-time main-number frequency with the
// frequency over the most recent 20% of draws. recentWeight in [0,1]
// controls how much the recent sample dominates; recent counts are rescaled
// to the all-time total so the two are comparable.
func (s *Statistics) WeightedFrequency(recentWeight float64) map[int]float64 {
	return s.weighted(recentWeight, s.rules.MainMax, s.numberFreq, mainPicks)
}

// WeightedStarFrequency is WeightedFrequency for stars
func (s *Statistics) WeightedStarFrequency(recentWeight float64) map[int]float64 {
	return s.weighted(recentWeight, s.rules.StarMax, s.starFreq, starPicks)
}

func (s *Statistics) weighted(recentWeight float64, max int, base map[int]int, picks func(models.Draw) []int) map[int]float64 {
	weighted := make(map[int]float64, max)
	for v, count := range base {
		weighted[v] = float64(count)
	}
	if recentWeight <= 0 || len(s.draws) == 0 {
		return weighted
	}

	recentCount := len(s.draws) / 5
	if recentCount < 1 {
		recentCount = 1
	}
	recentFreq := countOccurrences(s.draws[:recentCount], max, picks)

	baseTotal, recentTotal := 0, 0
	for _, c := range base {
		baseTotal += c
	}
	for _, c := range recentFreq {
		recentTotal += c
	}
	scale := 1.0
	if recentTotal > 0 {
		scale = float64(baseTotal) / float64(recentTotal)
	}
	for v := range weighted {
		recentVal := float64(recentFreq[v]) * scale
		weighted[v] = (1-recentWeight)*float64(base[v]) + recentWeight*recentVal
	}
	return weighted
}

// EvenOdd summarizes the even/odd makeup of historical draws
type EvenOdd struct {
	PerDraw        map[int]int // even-count per draw -> how many draws
	EvenRatio      float64
	OddRatio       float64
	ModalEvenCount int // most common even-count in a draw
}

// EvenOddDistribution analyzes how many even numbers appear per draw
func (s *Statistics) EvenOddDistribution() EvenOdd {
	dist := EvenOdd{PerDraw: make(map[int]int, s.rules.MainCount+1)}
	for i := 0; i <= s.rules.MainCount; i++ {
		dist.PerDraw[i] = 0
	}

	evenTotal, total := 0, 0
	for _, d := range s.draws {
		evens := 0
		for _, n := range d.Numbers {
			if n%2 == 0 {
				evens++
			}
		}
		dist.PerDraw[evens]++
		evenTotal += evens
		total += len(d.Numbers)
	}
	if total > 0 {
		dist.EvenRatio = float64(evenTotal) / float64(total)
		dist.OddRatio = 1 - dist.EvenRatio
	}

	// Modal even-count; ties resolve to the lower count for determinism
	best := -1
	for evens := 0; evens <= s.rules.MainCount; evens++ {
		if best < 0 || dist.PerDraw[evens] > dist.PerDraw[best] {
			best = evens
		}
	}
	dist.ModalEvenCount = best
	return dist
}

// RangeBucket is one decade-style bucket of the number space
type RangeBucket struct {
	Lo      int
	Hi      int
	Count   int
	Percent float64
}

// RangeDistribution buckets drawn main numbers into decades (1-10, 11-20,
// ...). The final bucket is clipped to MainMax.
func (s *Statistics) RangeDistribution() []RangeBucket {
	var buckets []RangeBucket
	for lo := 1; lo <= s.rules.MainMax; lo += 10 {
		hi := lo + 9
		if hi > s.rules.MainMax {
			hi = s.rules.MainMax
		}
		buckets = append(buckets, RangeBucket{Lo: lo, Hi: hi})
	}

	total := 0
	for n, count := range s.numberFreq {
		idx := (n - 1) / 10
		buckets[idx].Count += count
		total += count
	}
	if total > 0 {
		for i := range buckets {
			buckets[i].Percent = float64(buckets[i].Count) / float64(total) * 100
		}
	}
	return buckets
}

// SumBucket is one bucket of the draw-sum histogram
type SumBucket struct {
	Lo    int
	Hi    int
	Count int
	Share float64 // fraction of draws, 0-1
}

// SumStats summarizes the distribution of per-draw number sums
type SumStats struct {
	Buckets []SumBucket
	Mean    float64
	Median  float64
	StdDev  float64
	Min     int
	Max     int
}

// sumBucketWidth controls the histogram granularity for draw sums
const sumBucketWidth = 25

// SumDistribution computes the histogram and moments of per-draw sums
func (s *Statistics) SumDistribution() SumStats {
	if len(s.draws) == 0 {
		return SumStats{}
	}

	sums := make([]int, len(s.draws))
	for i, d := range s.draws {
		total := 0
		for _, n := range d.Numbers {
			total += n
		}
		sums[i] = total
	}

	minSum, maxSum := sums[0], sums[0]
	for _, v := range sums {
		if v < minSum {
			minSum = v
		}
		if v > maxSum {
			maxSum = v
		}
	}

	lo := (minSum / sumBucketWidth) * sumBucketWidth
	var buckets []SumBucket
	for b := lo; b <= maxSum; b += sumBucketWidth {
		buckets = append(buckets, SumBucket{Lo: b, Hi: b + sumBucketWidth - 1})
	}
	for _, v := range sums {
		buckets[(v-lo)/sumBucketWidth].Count++
	}
	for i := range buckets {
		buckets[i].Share = float64(buckets[i].Count) / float64(len(sums))
	}

	return SumStats{
		Buckets: buckets,
		Mean:    meanInts(sums),
		Median:  medianInts(sums),
		StdDev:  stdDevInts(sums),
		Min:     minSum,
		Max:     maxSum,
	}
}

// Gap describes the appearance pattern of a single number
type Gap struct {
	Occurrences    int
	Gaps           []int // draws between consecutive appearances
	AvgGap         float64
	DrawsSinceLast int
}

// GapFor analyzes the appearance gaps of a main number. A number that
// never appeared has DrawsSinceLast equal to the sample size.
func (s *Statistics) GapFor(number int) Gap {
	return gapAnalysis(s.draws, number, mainPicks)
}

// StarGapFor is GapFor for stars
func (s *Statistics) StarGapFor(star int) Gap {
	return gapAnalysis(s.draws, star, starPicks)
}

func gapAnalysis(draws []models.Draw, value int, picks func(models.Draw) []int) Gap {
	// Indexes into the recent-first ordering where the value appeared
	var hits []int
	for i, d := range draws {
		for _, v := range picks(d) {
			if v == value {
				hits = append(hits, i)
				break
			}
		}
	}

	g := Gap{Occurrences: len(hits), DrawsSinceLast: len(draws)}
	if len(hits) == 0 {
		return g
	}
	g.DrawsSinceLast = hits[0]
	for i := 0; i+1 < len(hits); i++ {
		g.Gaps = append(g.Gaps, hits[i+1]-hits[i]-1)
	}
	if len(g.Gaps) > 0 {
		g.AvgGap = meanInts(g.Gaps)
	}
	return g
}

// Recency summarizes the most recent slice of the sample
type Recency struct {
	Draws      int
	HotNumbers []int
	HotStars   []int
}

// RecencyStats returns the hottest numbers and stars over the last n draws
func (s *Statistics) RecencyStats(n int) Recency {
	if n > len(s.draws) {
		n = len(s.draws)
	}
	recent := s.draws[:n]
	numFreq := countOccurrences(recent, s.rules.MainMax, mainPicks)
	starFreq := countOccurrences(recent, s.rules.StarMax, starPicks)
	return Recency{
		Draws:      n,
		HotNumbers: topKeys(numFreq, 5, true),
		HotStars:   topKeys(starFreq, 3, true),
	}
}

// topKeys returns count keys ordered by value; ties resolve by key for
// deterministic output
func topKeys(freq map[int]int, count int, descending bool) []int {
	keys := make([]int, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if freq[a] != freq[b] {
			if descending {
				return freq[a] > freq[b]
			}
			return freq[a] < freq[b]
		}
		return a < b
	})
	if count > len(keys) {
		count = len(keys)
	}
	return keys[:count]
}

func copyIntMap(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

func medianInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}

func stdDevInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := meanInts(values)
	variance := 0.0
	for _, v := range values {
		diff := float64(v) - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}
