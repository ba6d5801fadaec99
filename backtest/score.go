package backtest

import (
	"fmt"

	"lotolab/models"
)

// Score counts how many picks of a combination matched a draw
type Score struct {
	Numbers int
	Stars   int
}

// Match scores a combination against a draw
func Match(combo models.Combination, draw models.Draw) Score {
	return Score{
		Numbers: countMatches(combo.Numbers, draw.Numbers),
		Stars:   countMatches(combo.Stars, draw.Stars),
	}
}

func countMatches(picks, drawn []int) int {
	set := make(map[int]bool, len(drawn))
	for _, v := range drawn {
		set[v] = true
	}
	matches := 0
	for _, p := range picks {
		if set[p] {
			matches++
		}
	}
	return matches
}

// Points returns the match score: two points per matched main number, one
// per matched star
func (s Score) Points() int {
	return 2*s.Numbers + s.Stars
}

// Tier describes a prize rank; rank 1 is the jackpot
type Tier struct {
	Rank    int
	Numbers int
	Stars   int
}

func (t Tier) String() string {
	return fmt.Sprintf("%d+%d", t.Numbers, t.Stars)
}

// euromillionsTiers lists the 13 Euromillions prize ranks
var euromillionsTiers = []Tier{
	{1, 5, 2}, {2, 5, 1}, {3, 5, 0},
	{4, 4, 2}, {5, 4, 1}, {6, 3, 2},
	{7, 4, 0}, {8, 2, 2}, {9, 3, 1},
	{10, 3, 0}, {11, 1, 2}, {12, 2, 1},
	{13, 2, 0},
}

// frenchLotoTiers lists the French Loto prize ranks. The lowest rank pays
// out for the lucky number alone.
var frenchLotoTiers = []Tier{
	{1, 5, 1}, {2, 5, 0},
	{3, 4, 1}, {4, 4, 0},
	{5, 3, 1}, {6, 3, 0},
	{7, 2, 1}, {8, 2, 0},
	{9, 0, 1},
}

// PrizeTier returns the prize tier the score reaches for the game, or nil
// when the score wins nothing
func PrizeTier(game models.Game, s Score) *Tier {
	tiers := euromillionsTiers
	if game == models.GameFrenchLoto {
		tiers = frenchLotoTiers
	}
	for _, t := range tiers {
		if game == models.GameFrenchLoto && t.Rank == 9 {
			// Lucky-number-only rank: capped at one matched main number,
			// higher matches already hit an earlier tier
			if s.Stars >= 1 && s.Numbers <= 1 {
				tier := t
				return &tier
			}
			continue
		}
		if s.Numbers == t.Numbers && s.Stars >= t.Stars {
			tier := t
			return &tier
		}
	}
	return nil
}
