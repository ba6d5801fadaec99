// Package csvdata parses historical draw exports. Rows carry a date, an
// optional day-of-week column, the main numbers, then the stars (or the
// lucky number for French Loto).
package csvdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"lotolab/models"
)

// dateLayouts lists the accepted date formats. French exports use
// day-first dates.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// Result holds the parsed draws and a count of rejected rows
type Result struct {
	Draws    []models.Draw
	Rejected int
}

// ReadDraws parses draws for the game from r. Rows that fail to parse or
// validate are counted and skipped; only unreadable input is fatal.
func ReadDraws(game models.Game, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &Result{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line++

		draw, err := parseRow(game, record)
		if err != nil {
			if line == 1 && looksLikeHeader(record) {
				continue
			}
			log.WithError(err).WithField("line", line).Warn("Skipping unparseable draw row")
			result.Rejected++
			continue
		}
		result.Draws = append(result.Draws, *draw)
	}

	return result, nil
}

// parseRow converts one record into a draw. Expected layouts:
//
//	date[,day_of_week],n1..n5,s1[,s2]
func parseRow(game models.Game, record []string) (*models.Draw, error) {
	rules := game.Rules()
	if len(record) < 1 {
		return nil, fmt.Errorf("empty record")
	}

	date, err := parseDate(record[0])
	if err != nil {
		return nil, err
	}

	fields := record[1:]
	dayOfWeek := ""
	picks := rules.MainCount + rules.StarCount
	switch len(fields) {
	case picks:
	case picks + 1:
		dayOfWeek = strings.TrimSpace(fields[0])
		fields = fields[1:]
	default:
		return nil, fmt.Errorf("expected %d or %d fields after date, got %d", picks, picks+1, len(fields))
	}

	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		values[i] = v
	}

	draw := &models.Draw{
		Game:      game,
		Date:      date,
		DayOfWeek: dayOfWeek,
		Numbers:   values[:rules.MainCount],
		Stars:     values[rules.MainCount:],
	}
	if draw.DayOfWeek == "" {
		draw.DayOfWeek = date.Weekday().String()
	}
	draw.Normalize()
	if err := draw.Validate(); err != nil {
		return nil, err
	}
	return draw, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// looksLikeHeader reports whether a record reads like column names
func looksLikeHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := parseDate(record[0])
	return err != nil
}
