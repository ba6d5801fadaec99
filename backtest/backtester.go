package backtest

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"lotolab/models"
	"lotolab/stats"
	"lotolab/strategy"
)

// Config controls a backtest run
type Config struct {
	// HoldOut is how many of the most recent draws form the walk-forward
	// test window
	HoldOut int
	// PerDraw is how many combinations each strategy generates per test
	// draw
	PerDraw int
	// MinTrain is the minimum number of training draws required before a
	// test draw is evaluated
	MinTrain int
	// Seed drives all strategy RNGs so runs are reproducible
	Seed int64
}

// DefaultConfig matches the usual evaluation setup
func DefaultConfig() Config {
	return Config{HoldOut: 20, PerDraw: 10, MinTrain: 50, Seed: 1}
}

// Backtester evaluates strategies against historical draws
type Backtester struct {
	game   models.Game
	config Config
	logger *logrus.Logger
}

// New creates a backtester for the game
func New(game models.Game, config Config, logger *logrus.Logger) *Backtester {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Backtester{game: game, config: config, logger: logger}
}

// Run evaluates the named strategies walk-forward: for each held-out draw,
// strategies are rebuilt from strictly older draws, generate combinations,
// and are scored against the draw they could not see. A strategy that
// errors is recorded with zeroed metrics and does not affect the others.
func (b *Backtester) Run(ctx context.Context, draws []models.Draw, strategies []string) ([]models.StrategyResult, error) {
	sorted := sortRecentFirst(draws)
	if b.config.HoldOut < 1 {
		return nil, fmt.Errorf("hold-out window must be positive, got %d", b.config.HoldOut)
	}
	if len(sorted) < b.config.HoldOut+b.config.MinTrain {
		return nil, fmt.Errorf("need at least %d draws for backtesting, have %d",
			b.config.HoldOut+b.config.MinTrain, len(sorted))
	}

	testDraws := sorted[:b.config.HoldOut]
	results := make([]models.StrategyResult, 0, len(strategies))
	for _, name := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, b.evaluateWalkForward(name, sorted, testDraws))
	}
	rankResults(results)
	return results, nil
}

func (b *Backtester) evaluateWalkForward(name string, sorted, testDraws []models.Draw) models.StrategyResult {
	result := models.StrategyResult{
		Game:      b.game,
		Strategy:  name,
		Tiers:     make(map[string]int),
		TestDraws: len(testDraws),
		RunAt:     time.Now().UTC(),
	}

	var points []int
	rng := rand.New(rand.NewSource(b.config.Seed))
	for i := len(testDraws) - 1; i >= 0; i-- {
		// Train on everything strictly older than the test draw
		train := sorted[i+1:]
		trainStats := stats.New(b.game, train)

		gen, err := strategy.New(name, trainStats, rng)
		if err != nil {
			return failResult(result, err)
		}
		combos, err := gen.Generate(b.config.PerDraw)
		if err != nil {
			b.logger.WithError(err).WithField("strategy", name).Warn("strategy failed during backtest")
			return failResult(result, err)
		}

		for _, combo := range combos {
			points = append(points, b.record(&result, combo, testDraws[i]))
		}
	}

	fillMetrics(&result, points)
	return result
}

// RunSplit evaluates strategies against a single train/test partition:
// strategies are built once from the training draws, generate one batch of
// combinations, and every combination is scored against every test draw.
func (b *Backtester) RunSplit(ctx context.Context, draws []models.Draw, strategies []string, testRatio float64) ([]models.StrategyResult, error) {
	train, test, err := Split(draws, testRatio)
	if err != nil {
		return nil, err
	}
	if len(train) < b.config.MinTrain {
		return nil, fmt.Errorf("need at least %d training draws, have %d", b.config.MinTrain, len(train))
	}

	trainStats := stats.New(b.game, train)
	results := make([]models.StrategyResult, 0, len(strategies))
	for _, name := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, b.evaluateSplit(name, trainStats, test))
	}
	rankResults(results)
	return results, nil
}

func (b *Backtester) evaluateSplit(name string, trainStats *stats.Statistics, test []models.Draw) models.StrategyResult {
	result := models.StrategyResult{
		Game:      b.game,
		Strategy:  name,
		Tiers:     make(map[string]int),
		TestDraws: len(test),
		RunAt:     time.Now().UTC(),
	}

	gen, err := strategy.New(name, trainStats, rand.New(rand.NewSource(b.config.Seed)))
	if err != nil {
		return failResult(result, err)
	}
	combos, err := gen.Generate(b.config.PerDraw)
	if err != nil {
		b.logger.WithError(err).WithField("strategy", name).Warn("strategy failed during backtest")
		return failResult(result, err)
	}

	var points []int
	for _, combo := range combos {
		for _, draw := range test {
			points = append(points, b.record(&result, combo, draw))
		}
	}
	fillMetrics(&result, points)
	return result
}

// record scores one combination against one draw, updating tier counts
func (b *Backtester) record(result *models.StrategyResult, combo models.Combination, draw models.Draw) int {
	score := Match(combo, draw)
	if tier := PrizeTier(b.game, score); tier != nil {
		result.Tiers[tier.String()]++
	}
	return score.Points()
}

// Split partitions draws into train and test sets. The test set holds the
// most recent testRatio share of the draws; the two never overlap.
func Split(draws []models.Draw, testRatio float64) (train, test []models.Draw, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in (0,1), got %v", testRatio)
	}
	sorted := sortRecentFirst(draws)
	cut := int(float64(len(sorted)) * testRatio)
	if cut < 1 || cut >= len(sorted) {
		return nil, nil, fmt.Errorf("cannot split %d draws at ratio %v", len(sorted), testRatio)
	}
	return sorted[cut:], sorted[:cut], nil
}

func sortRecentFirst(draws []models.Draw) []models.Draw {
	sorted := make([]models.Draw, len(draws))
	copy(sorted, draws)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

func failResult(result models.StrategyResult, err error) models.StrategyResult {
	result.Error = err.Error()
	result.Tiers = make(map[string]int)
	return result
}

// fillMetrics computes the aggregate metrics from per-combination points
func fillMetrics(result *models.StrategyResult, points []int) {
	result.TotalCombinations = len(points)
	if len(points) == 0 {
		return
	}

	total := 0
	maxScore := points[0]
	for _, p := range points {
		total += p
		if p > maxScore {
			maxScore = p
		}
	}
	result.AvgScore = float64(total) / float64(len(points))
	result.MaxScore = maxScore
	result.MedianScore = medianInts(points)
	result.StdDev = stdDevInts(points, result.AvgScore)
	result.WinRate = float64(result.PrizeWins()) / float64(len(points)) * 100
}

// rankResults orders results by win rate, then average score, best first.
// Failed strategies sink to the bottom.
func rankResults(results []models.StrategyResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.AvgScore > b.AvgScore
	})
}

func medianInts(values []int) float64 {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}

func stdDevInts(values []int, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := float64(v) - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}
