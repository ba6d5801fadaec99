package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lotolab/backtest"
	"lotolab/config"
	"lotolab/models"
	"lotolab/service"
	"lotolab/strategy"
)

var (
	backtestCSV        string
	backtestStrategies []string
	backtestMode       string
	backtestHoldOut    int
	backtestPerDraw    int
	backtestMinTrain   int
	backtestTestRatio  float64
	backtestSeed       int64
	backtestSave       bool
	backtestJSON       bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Evaluate strategies against held-out historical draws",
	Long: `Backtest evaluates strategies against draws they could not see.
In walk mode each held-out draw is scored with strategies rebuilt from
strictly older draws; in split mode the most recent share of draws forms
a fixed test set. Results rank by win rate, then average score.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := parseGameFlag()
		if err != nil {
			return err
		}
		bc := backtestConfig()

		var results []models.StrategyResult
		if backtestCSV != "" {
			if backtestSave {
				return fmt.Errorf("--save requires a database, not --csv")
			}
			results, err = backtestOffline(cmd, game, bc)
		} else {
			ctx := cmd.Context()
			db, dbErr := openDatabase(ctx)
			if dbErr != nil {
				return dbErr
			}
			defer db.Close()

			svc := service.NewBacktestService(newUnitOfWorkFactory(db), bc)
			switch backtestMode {
			case "walk":
				results, err = svc.Run(ctx, game, backtestStrategies, backtestSave)
			case "split":
				results, err = svc.RunSplit(ctx, game, backtestStrategies, testRatio(), backtestSave)
			default:
				return fmt.Errorf("unknown mode %q (expected walk or split)", backtestMode)
			}
		}
		if err != nil {
			return err
		}

		if backtestJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		writeResultsText(cmd.OutOrStdout(), game, results)
		return nil
	},
}

func init() {
	backtestCmd.Flags().StringVar(&backtestCSV, "csv", "", "read draws from a CSV file instead of the database")
	backtestCmd.Flags().StringSliceVarP(&backtestStrategies, "strategies", "s", nil, "strategies to evaluate (default all)")
	backtestCmd.Flags().StringVar(&backtestMode, "mode", "walk", "backtest mode: walk or split")
	backtestCmd.Flags().IntVar(&backtestHoldOut, "holdout", 0, "held-out draws for walk mode")
	backtestCmd.Flags().IntVar(&backtestPerDraw, "per-draw", 0, "combinations per strategy per test draw")
	backtestCmd.Flags().IntVar(&backtestMinTrain, "min-train", 0, "minimum training draws")
	backtestCmd.Flags().Float64Var(&backtestTestRatio, "test-ratio", 0, "test share for split mode")
	backtestCmd.Flags().Int64Var(&backtestSeed, "seed", 0, "RNG seed for reproducible runs")
	backtestCmd.Flags().BoolVar(&backtestSave, "save", false, "persist the ranked results")
	backtestCmd.Flags().BoolVar(&backtestJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(backtestCmd)
}

// backtestConfig merges flags over the configured defaults
func backtestConfig() backtest.Config {
	cfg := config.Get().Backtest
	bc := backtest.Config{
		HoldOut:  cfg.HoldOut,
		PerDraw:  cfg.PerDraw,
		MinTrain: cfg.MinTrain,
		Seed:     cfg.Seed,
	}
	if backtestHoldOut > 0 {
		bc.HoldOut = backtestHoldOut
	}
	if backtestPerDraw > 0 {
		bc.PerDraw = backtestPerDraw
	}
	if backtestMinTrain > 0 {
		bc.MinTrain = backtestMinTrain
	}
	if backtestSeed != 0 {
		bc.Seed = backtestSeed
	}
	return bc
}

func testRatio() float64 {
	if backtestTestRatio > 0 {
		return backtestTestRatio
	}
	return config.Get().Backtest.TestRatio
}

// backtestOffline evaluates strategies over CSV draws without a database
func backtestOffline(cmd *cobra.Command, game models.Game, bc backtest.Config) ([]models.StrategyResult, error) {
	draws, err := loadDrawsOffline(game, backtestCSV)
	if err != nil {
		return nil, err
	}

	names := backtestStrategies
	b := backtest.New(game, bc, log.StandardLogger())
	switch backtestMode {
	case "walk":
		return b.Run(cmd.Context(), draws, namesOrAll(names))
	case "split":
		return b.RunSplit(cmd.Context(), draws, namesOrAll(names), testRatio())
	default:
		return nil, fmt.Errorf("unknown mode %q (expected walk or split)", backtestMode)
	}
}

func namesOrAll(names []string) []string {
	if len(names) == 0 {
		return strategy.Names()
	}
	return names
}

func writeResultsText(w io.Writer, game models.Game, results []models.StrategyResult) {
	fmt.Fprintf(w, "%-14s %9s %9s %7s %7s %9s\n", "STRATEGY", "WIN RATE", "AVG", "MEDIAN", "MAX", "COMBOS")
	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(w, "%-14s failed: %s\n", r.Strategy, r.Error)
			continue
		}
		fmt.Fprintf(w, "%-14s %8.1f%% %9.2f %7.1f %7d %9d\n",
			r.Strategy, r.WinRate, r.AvgScore, r.MedianScore, r.MaxScore, r.TotalCombinations)
	}
	if len(results) > 0 && !results[0].Failed() {
		fmt.Fprintf(w, "\nBest strategy for %s: %s\n", game, results[0].Strategy)
	}
}
