package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotolab/models"
	"lotolab/repository/testutil"
)

func TestCombinationRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewCombinationRepository(testDB.DB)
	ctx := context.Background()

	t.Run("save assigns ids and timestamps", func(t *testing.T) {
		combos := []models.Combination{
			testutil.CreateTestCombination("frequency"),
			testutil.CreateTestCombination("markov"),
		}
		require.NoError(t, repo.Save(ctx, combos))

		for _, c := range combos {
			assert.NotZero(t, c.ID)
			assert.False(t, c.CreatedAt.IsZero())
		}
	})

	t.Run("get recent round-trips arrays and scores", func(t *testing.T) {
		combos, err := repo.GetRecent(ctx, models.GameEuromillions, 10)
		require.NoError(t, err)
		require.Len(t, combos, 2)

		for _, c := range combos {
			assert.Equal(t, []int{6, 9, 25, 37, 46}, c.Numbers)
			assert.Equal(t, []int{6, 12}, c.Stars)
			assert.InDelta(t, 72.5, c.Score, 1e-9)
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		combos, err := repo.GetRecent(ctx, models.GameEuromillions, 1)
		require.NoError(t, err)
		assert.Len(t, combos, 1)
	})

	t.Run("other game empty", func(t *testing.T) {
		combos, err := repo.GetRecent(ctx, models.GameFrenchLoto, 10)
		require.NoError(t, err)
		assert.Empty(t, combos)
	})
}
