package models

import "fmt"

// Game identifies a supported lottery rule set
type Game string

const (
	GameEuromillions Game = "euromillions"
	GameFrenchLoto   Game = "french_loto"
)

// Rules describes the shape of a game's draw
type Rules struct {
	MainCount int // how many main numbers per draw
	MainMax   int // main numbers are drawn from 1..MainMax
	StarCount int // how many secondary numbers per draw
	StarMax   int // secondary numbers are drawn from 1..StarMax
	StarLabel string
}

// ParseGame converts a user-supplied game name to a Game
func ParseGame(s string) (Game, error) {
	switch Game(s) {
	case GameEuromillions:
		return GameEuromillions, nil
	case GameFrenchLoto:
		return GameFrenchLoto, nil
	default:
		return "", fmt.Errorf("unknown game %q (expected %q or %q)", s, GameEuromillions, GameFrenchLoto)
	}
}

// Rules returns the rule set for the game
func (g Game) Rules() Rules {
	switch g {
	case GameFrenchLoto:
		return Rules{MainCount: 5, MainMax: 49, StarCount: 1, StarMax: 10, StarLabel: "lucky"}
	default:
		return Rules{MainCount: 5, MainMax: 50, StarCount: 2, StarMax: 12, StarLabel: "star"}
	}
}

// MaxPoints returns the highest possible match score for the game:
// two points per matched main number, one per matched star
func (g Game) MaxPoints() int {
	r := g.Rules()
	return 2*r.MainCount + r.StarCount
}
