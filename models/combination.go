package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Combination represents a generated guess: main numbers plus stars (or a
// lucky number), tagged with the strategy that produced it and a heuristic
// score on a 0-100 scale.
type Combination struct {
	ID        int64     `db:"id"`
	Game      Game      `db:"game"`
	Numbers   []int     `db:"numbers"`
	Stars     []int     `db:"stars"`
	Strategy  string    `db:"strategy"`
	Score     float64   `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

// Validate checks the combination against its game's rules
func (c *Combination) Validate() error {
	r := c.Game.Rules()
	if err := validatePicks(c.Numbers, r.MainCount, r.MainMax, "number"); err != nil {
		return err
	}
	if err := validatePicks(c.Stars, r.StarCount, r.StarMax, r.StarLabel); err != nil {
		return err
	}
	return nil
}

// Normalize sorts numbers and stars ascending
func (c *Combination) Normalize() {
	sort.Ints(c.Numbers)
	sort.Ints(c.Stars)
}

// String renders the combination as "n n n n n + s s"
func (c *Combination) String() string {
	return fmt.Sprintf("%s + %s", joinInts(c.Numbers), joinInts(c.Stars))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}
