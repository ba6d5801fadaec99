package models

import (
	"fmt"
	"sort"
	"time"
)

// Draw represents one historical lottery draw. Draws are immutable facts
// once recorded; there is exactly one per game and date.
type Draw struct {
	ID        int64     `db:"id"`
	Game      Game      `db:"game"`
	Date      time.Time `db:"draw_date"`
	DayOfWeek string    `db:"day_of_week"`
	Numbers   []int     `db:"numbers"`
	Stars     []int     `db:"stars"`
}

// Validate checks the draw against its game's rules
func (d *Draw) Validate() error {
	r := d.Game.Rules()
	if d.Date.IsZero() {
		return fmt.Errorf("draw date is required")
	}
	if err := validatePicks(d.Numbers, r.MainCount, r.MainMax, "number"); err != nil {
		return err
	}
	if err := validatePicks(d.Stars, r.StarCount, r.StarMax, r.StarLabel); err != nil {
		return err
	}
	return nil
}

// Normalize sorts numbers and stars ascending
func (d *Draw) Normalize() {
	sort.Ints(d.Numbers)
	sort.Ints(d.Stars)
}

// validatePicks checks that values holds exactly count unique entries in 1..max
func validatePicks(values []int, count, max int, label string) error {
	if len(values) != count {
		return fmt.Errorf("expected %d %ss, got %d", count, label, len(values))
	}
	seen := make(map[int]bool, count)
	for _, v := range values {
		if v < 1 || v > max {
			return fmt.Errorf("%s %d out of range [1,%d]", label, v, max)
		}
		if seen[v] {
			return fmt.Errorf("duplicate %s %d", label, v)
		}
		seen[v] = true
	}
	return nil
}
