package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotolab/models"
	"lotolab/repository/testutil"
)

func TestDrawRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewDrawRepository(testDB.DB)
	ctx := context.Background()

	t.Run("insert and get by game", func(t *testing.T) {
		draw := testutil.CreateTestDraw(0)
		require.NoError(t, repo.Insert(ctx, &draw))
		assert.NotZero(t, draw.ID)

		draws, err := repo.GetByGame(ctx, models.GameEuromillions)
		require.NoError(t, err)
		require.Len(t, draws, 1)
		assert.Equal(t, draw.Numbers, draws[0].Numbers)
		assert.Equal(t, draw.Stars, draws[0].Stars)
		assert.Equal(t, models.GameEuromillions, draws[0].Game)
	})

	t.Run("draws ordered most recent first", func(t *testing.T) {
		older := testutil.CreateTestDraw(-7)
		newer := testutil.CreateTestDraw(7)
		require.NoError(t, repo.Insert(ctx, &older))
		require.NoError(t, repo.Insert(ctx, &newer))

		draws, err := repo.GetByGame(ctx, models.GameEuromillions)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(draws), 3)
		for i := 0; i+1 < len(draws); i++ {
			assert.True(t, draws[i].Date.After(draws[i+1].Date))
		}
	})

	t.Run("games are isolated", func(t *testing.T) {
		loto := testutil.CreateTestLotoDraw(0)
		require.NoError(t, repo.Insert(ctx, &loto))

		draws, err := repo.GetByGame(ctx, models.GameFrenchLoto)
		require.NoError(t, err)
		require.Len(t, draws, 1)
		assert.Equal(t, models.GameFrenchLoto, draws[0].Game)
	})

	t.Run("get latest", func(t *testing.T) {
		latest, err := repo.GetLatest(ctx, models.GameEuromillions)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, testutil.CreateTestDraw(7).Date, latest.Date)
	})

	t.Run("exists", func(t *testing.T) {
		known := testutil.CreateTestDraw(0)
		exists, err := repo.Exists(ctx, models.GameEuromillions, known.Date)
		require.NoError(t, err)
		assert.True(t, exists)

		unknown := testutil.CreateTestDraw(100)
		exists, err = repo.Exists(ctx, models.GameEuromillions, unknown.Date)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx, models.GameEuromillions)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("duplicate date rejected", func(t *testing.T) {
		dup := testutil.CreateTestDraw(0)
		err := repo.Insert(ctx, &dup)
		require.Error(t, err)
	})

	t.Run("get latest returns nil for empty game", func(t *testing.T) {
		testDB.TruncateAll(t)

		latest, err := repo.GetLatest(ctx, models.GameEuromillions)
		require.NoError(t, err)
		assert.Nil(t, latest)
	})
}
