package testutil

import (
	"time"

	"lotolab/models"
)

// CreateTestDraw builds a valid Euromillions draw for the given date offset
// in days from a fixed base date
func CreateTestDraw(dayOffset int) models.Draw {
	date := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
	return models.Draw{
		Game:      models.GameEuromillions,
		Date:      date,
		DayOfWeek: date.Weekday().String(),
		Numbers:   []int{3, 14, 27, 38, 45},
		Stars:     []int{4, 9},
	}
}

// CreateTestLotoDraw builds a valid French Loto draw
func CreateTestLotoDraw(dayOffset int) models.Draw {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
	return models.Draw{
		Game:      models.GameFrenchLoto,
		Date:      date,
		DayOfWeek: date.Weekday().String(),
		Numbers:   []int{5, 12, 23, 34, 49},
		Stars:     []int{7},
	}
}

// CreateTestCombination builds a valid combination for the given strategy
func CreateTestCombination(strategy string) models.Combination {
	return models.Combination{
		Game:     models.GameEuromillions,
		Numbers:  []int{6, 9, 25, 37, 46},
		Stars:    []int{6, 12},
		Strategy: strategy,
		Score:    72.5,
	}
}

// CreateTestStrategyResult builds a backtest result for the given strategy
func CreateTestStrategyResult(strategy string, runAt time.Time) models.StrategyResult {
	return models.StrategyResult{
		Game:              models.GameEuromillions,
		Strategy:          strategy,
		AvgScore:          2.4,
		MedianScore:       2,
		MaxScore:          6,
		StdDev:            1.1,
		WinRate:           18.0,
		Tiers:             map[string]int{"2+0": 5, "2+1": 1},
		TotalCombinations: 200,
		TestDraws:         20,
		RunAt:             runAt,
	}
}
