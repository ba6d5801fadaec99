package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"lotolab/config"
	"lotolab/models"
	"lotolab/service"
	"lotolab/stats"
	"lotolab/strategy"
)

var (
	generateCSV        string
	generateStrategies []string
	generateCount      int
	generateSave       bool
	generateJSON       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate combinations using one or more strategies",
	Long: `Generate builds the selected strategies from the stored draw
history and produces combinations. With --csv the draws are read from a
file and nothing is persisted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := parseGameFlag()
		if err != nil {
			return err
		}
		cfg := config.Get()
		count := generateCount
		if count == 0 {
			count = cfg.Generation.Count
		}

		var combos []models.Combination
		if generateCSV != "" {
			if generateSave {
				return fmt.Errorf("--save requires a database, not --csv")
			}
			combos, err = generateOffline(game, count)
		} else {
			ctx := cmd.Context()
			db, dbErr := openDatabase(ctx)
			if dbErr != nil {
				return dbErr
			}
			defer db.Close()

			svc := service.NewGenerationService(newUnitOfWorkFactory(db), cfg.Backtest.Seed)
			combos, err = svc.Generate(ctx, game, generateStrategies, count, generateSave)
		}
		if err != nil {
			return err
		}

		if generateJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(combos)
		}
		for _, c := range combos {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s  %s  (score %.1f)\n", c.Strategy, c.String(), c.Score)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateCSV, "csv", "", "read draws from a CSV file instead of the database")
	generateCmd.Flags().StringSliceVarP(&generateStrategies, "strategies", "s", nil,
		fmt.Sprintf("strategies to run (default all: %v)", strategy.Names()))
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 0, "combinations per strategy")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "persist the generated combinations")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(generateCmd)
}

// generateOffline runs strategies over CSV draws without a database
func generateOffline(game models.Game, count int) ([]models.Combination, error) {
	draws, err := loadDrawsOffline(game, generateCSV)
	if err != nil {
		return nil, err
	}

	names := generateStrategies
	if len(names) == 0 {
		names = strategy.Names()
	}

	drawStats := stats.New(game, draws)
	rng := rand.New(rand.NewSource(config.Get().Backtest.Seed))

	var combos []models.Combination
	for _, name := range names {
		gen, err := strategy.New(name, drawStats, rng)
		if err != nil {
			return nil, err
		}
		batch, err := gen.Generate(count)
		if err != nil {
			return nil, fmt.Errorf("strategy %s failed: %w", name, err)
		}
		combos = append(combos, batch...)
	}
	return combos, nil
}
