package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lotolab/models"
	"lotolab/repository"
	"lotolab/stats"
)

var (
	statsCSV    string
	statsJSON   bool
	statsRecent int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show frequency and pattern statistics for a game",
	Long: `Stats computes frequency tables, hot and cold numbers, even/odd
and range distributions, draw-sum moments and recency statistics over the
stored draw history. With --csv the draws are read from a file instead of
the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := parseGameFlag()
		if err != nil {
			return err
		}

		var draws []models.Draw
		if statsCSV != "" {
			draws, err = loadDrawsOffline(game, statsCSV)
			if err != nil {
				return err
			}
		} else {
			ctx := cmd.Context()
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			draws, err = repository.NewDrawRepository(db).GetByGame(ctx, game)
			if err != nil {
				return err
			}
		}
		if len(draws) == 0 {
			return fmt.Errorf("no draws recorded for game %s", game)
		}

		s := stats.New(game, draws)
		if statsJSON {
			return writeStatsJSON(cmd.OutOrStdout(), s)
		}
		writeStatsText(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsCSV, "csv", "", "read draws from a CSV file instead of the database")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit JSON instead of text")
	statsCmd.Flags().IntVar(&statsRecent, "recent", 10, "window for recency statistics, in draws")
	rootCmd.AddCommand(statsCmd)
}

// statsReport is the JSON shape of the stats command output
type statsReport struct {
	Game        models.Game        `json:"game"`
	Draws       int                `json:"draws"`
	HotNumbers  []int              `json:"hot_numbers"`
	ColdNumbers []int              `json:"cold_numbers"`
	HotStars    []int              `json:"hot_stars"`
	ColdStars   []int              `json:"cold_stars"`
	EvenOdd     stats.EvenOdd      `json:"even_odd"`
	Ranges      []stats.RangeBucket `json:"ranges"`
	Sums        stats.SumStats     `json:"sums"`
	Recent      stats.Recency      `json:"recent"`
}

func buildStatsReport(s *stats.Statistics) statsReport {
	return statsReport{
		Game:        s.Game(),
		Draws:       s.Len(),
		HotNumbers:  s.HotNumbers(10),
		ColdNumbers: s.ColdNumbers(10),
		HotStars:    s.HotStars(4),
		ColdStars:   s.ColdStars(4),
		EvenOdd:     s.EvenOddDistribution(),
		Ranges:      s.RangeDistribution(),
		Sums:        s.SumDistribution(),
		Recent:      s.RecencyStats(statsRecent),
	}
}

func writeStatsJSON(w io.Writer, s *stats.Statistics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildStatsReport(s))
}

func writeStatsText(w io.Writer, s *stats.Statistics) {
	report := buildStatsReport(s)

	fmt.Fprintf(w, "Game: %s (%d draws)\n\n", report.Game, report.Draws)
	fmt.Fprintf(w, "Hot numbers:  %v\n", report.HotNumbers)
	fmt.Fprintf(w, "Cold numbers: %v\n", report.ColdNumbers)
	fmt.Fprintf(w, "Hot %ss:  %v\n", s.Game().Rules().StarLabel, report.HotStars)
	fmt.Fprintf(w, "Cold %ss: %v\n\n", s.Game().Rules().StarLabel, report.ColdStars)

	fmt.Fprintf(w, "Even ratio: %.1f%% (modal even count %d)\n",
		report.EvenOdd.EvenRatio*100, report.EvenOdd.ModalEvenCount)

	fmt.Fprintln(w, "\nRange distribution:")
	for _, b := range report.Ranges {
		fmt.Fprintf(w, "  %2d-%2d  %5.1f%%\n", b.Lo, b.Hi, b.Percent)
	}

	fmt.Fprintf(w, "\nDraw sums: mean %.1f, median %.1f, stddev %.1f (min %d, max %d)\n",
		report.Sums.Mean, report.Sums.Median, report.Sums.StdDev, report.Sums.Min, report.Sums.Max)

	fmt.Fprintf(w, "\nLast %d draws: hot numbers %v, hot %ss %v\n",
		report.Recent.Draws, report.Recent.HotNumbers, s.Game().Rules().StarLabel, report.Recent.HotStars)
}
