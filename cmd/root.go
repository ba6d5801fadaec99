package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lotolab/config"
	"lotolab/csvdata"
	"lotolab/database"
	"lotolab/events"
	"lotolab/models"
	"lotolab/repository"
	"lotolab/service"
)

var rootCmd = &cobra.Command{
	Use:   "lotolab",
	Short: "Lottery draw analysis and strategy backtesting",
	Long: `lotolab imports historical Euromillions and French Loto draws,
computes frequency and pattern statistics, generates combinations with
configurable strategies, and backtests those strategies against held-out
draws.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := log.ParseLevel(config.Get().LogLevel)
		if err != nil {
			level = log.InfoLevel
		}
		log.SetLevel(level)
	},
}

var gameFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&gameFlag, "game", string(models.GameEuromillions),
		fmt.Sprintf("game to operate on (%s or %s)", models.GameEuromillions, models.GameFrenchLoto))
}

// Execute runs the root command with the given context
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func parseGameFlag() (models.Game, error) {
	return models.ParseGame(gameFlag)
}

// openDatabase connects to the configured database
func openDatabase(ctx context.Context) (*database.DB, error) {
	cfg := config.Get()
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not configured")
	}
	return database.NewConnection(ctx, cfg.DatabaseURL)
}

// newUnitOfWorkFactory wires the repositories and event bus over the pool
func newUnitOfWorkFactory(db *database.DB) service.UnitOfWorkFactory {
	bus := events.NewBus()
	registerEventLogging(bus)
	return repository.NewUnitOfWorkFactory(db, bus)
}

// registerEventLogging logs domain events as they are flushed after commit
func registerEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeDrawsImported, func(ctx context.Context, e events.Event) {
		ev := e.(events.DrawsImportedEvent)
		log.WithFields(log.Fields{
			"game":     ev.Game,
			"imported": ev.Imported,
			"skipped":  ev.Skipped,
		}).Info("Draws imported")
	})
	bus.Subscribe(events.EventTypeCombinationsGenerated, func(ctx context.Context, e events.Event) {
		ev := e.(events.CombinationsGeneratedEvent)
		log.WithFields(log.Fields{
			"game":      ev.Game,
			"strategy":  ev.Strategy,
			"count":     ev.Count,
			"persisted": ev.Persisted,
		}).Info("Combinations generated")
	})
	bus.Subscribe(events.EventTypeBacktestCompleted, func(ctx context.Context, e events.Event) {
		ev := e.(events.BacktestCompletedEvent)
		log.WithFields(log.Fields{
			"game":       ev.Game,
			"strategies": ev.Strategies,
			"best":       ev.Best,
		}).Info("Backtest completed")
	})
}

// loadDrawsOffline reads draws from a CSV file for database-free runs
func loadDrawsOffline(game models.Game, path string) ([]models.Draw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draw file: %w", err)
	}
	defer f.Close()

	parsed, err := csvdata.ReadDraws(game, f)
	if err != nil {
		return nil, err
	}
	if len(parsed.Draws) == 0 {
		return nil, fmt.Errorf("no valid draws in %s", path)
	}
	if parsed.Rejected > 0 {
		log.WithField("rejected", parsed.Rejected).Warn("Some draw rows were skipped")
	}
	return parsed.Draws, nil
}
