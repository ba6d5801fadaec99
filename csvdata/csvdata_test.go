package csvdata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotolab/models"
)

func TestReadDraws(t *testing.T) {
	t.Run("euromillions with header and day column", func(t *testing.T) {
		input := strings.Join([]string{
			"date,day,n1,n2,n3,n4,n5,s1,s2",
			"2025-05-13,Tuesday,7,9,15,19,44,2,8",
			"2025-05-09,Friday,6,9,25,37,46,6,12",
		}, "\n")

		result, err := ReadDraws(models.GameEuromillions, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, result.Draws, 2)
		assert.Zero(t, result.Rejected)

		first := result.Draws[0]
		assert.Equal(t, time.Date(2025, time.May, 13, 0, 0, 0, 0, time.UTC), first.Date)
		assert.Equal(t, "Tuesday", first.DayOfWeek)
		assert.Equal(t, []int{7, 9, 15, 19, 44}, first.Numbers)
		assert.Equal(t, []int{2, 8}, first.Stars)
	})

	t.Run("french date format without day column", func(t *testing.T) {
		input := "13/05/2025,7,9,15,19,44,2,8\n"

		result, err := ReadDraws(models.GameEuromillions, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, result.Draws, 1)
		assert.Equal(t, time.Date(2025, time.May, 13, 0, 0, 0, 0, time.UTC), result.Draws[0].Date)
		// Day of week derived from the date
		assert.Equal(t, "Tuesday", result.Draws[0].DayOfWeek)
	})

	t.Run("french loto single lucky number", func(t *testing.T) {
		input := "2025-06-02,5,12,23,34,49,7\n"

		result, err := ReadDraws(models.GameFrenchLoto, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, result.Draws, 1)
		assert.Equal(t, []int{5, 12, 23, 34, 49}, result.Draws[0].Numbers)
		assert.Equal(t, []int{7}, result.Draws[0].Stars)
	})

	t.Run("numbers normalized ascending", func(t *testing.T) {
		input := "2025-05-13,44,9,15,7,19,8,2\n"

		result, err := ReadDraws(models.GameEuromillions, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, result.Draws, 1)
		assert.Equal(t, []int{7, 9, 15, 19, 44}, result.Draws[0].Numbers)
		assert.Equal(t, []int{2, 8}, result.Draws[0].Stars)
	})

	t.Run("bad rows counted not fatal", func(t *testing.T) {
		input := strings.Join([]string{
			"2025-05-13,7,9,15,19,44,2,8",
			"2025-05-14,7,9,15,19,99,2,8",  // out of range
			"2025-05-15,7,9,15,19,2,8",     // too few fields
			"2025-05-16,7,7,15,19,44,2,8",  // duplicate
			"not-a-date,7,9,15,19,44,2,8",  // bad date
			"2025-05-17,7,9,15,19,44,2,14", // star out of range
		}, "\n")

		result, err := ReadDraws(models.GameEuromillions, strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, result.Draws, 1)
		assert.Equal(t, 5, result.Rejected)
	})

	t.Run("empty input", func(t *testing.T) {
		result, err := ReadDraws(models.GameEuromillions, strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, result.Draws)
		assert.Zero(t, result.Rejected)
	})
}
