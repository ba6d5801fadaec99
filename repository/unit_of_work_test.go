package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotolab/events"
	"lotolab/models"
	"lotolab/repository/testutil"
)

func TestUnitOfWork(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	t.Run("commit persists and publishes events", func(t *testing.T) {
		bus := events.NewBus()
		var mu sync.Mutex
		var received []events.Event
		bus.Subscribe(events.EventTypeDrawsImported, func(ctx context.Context, e events.Event) {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, e)
		})

		factory := NewUnitOfWorkFactory(testDB.DB, bus)
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		draw := testutil.CreateTestDraw(0)
		require.NoError(t, uow.DrawRepository().Insert(ctx, &draw))
		uow.EventBus().Publish(events.DrawsImportedEvent{Game: models.GameEuromillions, Imported: 1})

		require.NoError(t, uow.Commit())

		// Draw visible outside the transaction
		repo := NewDrawRepository(testDB.DB)
		count, err := repo.Count(ctx, models.GameEuromillions)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		// Handlers run async
		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(received) == 1
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("rollback discards writes and events", func(t *testing.T) {
		bus := events.NewBus()
		fired := make(chan struct{}, 1)
		bus.Subscribe(events.EventTypeDrawsImported, func(ctx context.Context, e events.Event) {
			fired <- struct{}{}
		})

		factory := NewUnitOfWorkFactory(testDB.DB, bus)
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		draw := testutil.CreateTestDraw(30)
		require.NoError(t, uow.DrawRepository().Insert(ctx, &draw))
		uow.EventBus().Publish(events.DrawsImportedEvent{Game: models.GameEuromillions, Imported: 1})

		require.NoError(t, uow.Rollback())

		repo := NewDrawRepository(testDB.DB)
		exists, err := repo.Exists(ctx, models.GameEuromillions, draw.Date)
		require.NoError(t, err)
		assert.False(t, exists)

		select {
		case <-fired:
			t.Fatal("event published despite rollback")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("double begin rejected", func(t *testing.T) {
		factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		assert.Error(t, uow.Begin(ctx))
	})

	t.Run("commit without begin rejected", func(t *testing.T) {
		factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
		uow := factory.Create()
		assert.Error(t, uow.Commit())
	})

	t.Run("repository access before begin panics", func(t *testing.T) {
		factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
		uow := factory.Create()
		assert.Panics(t, func() { uow.DrawRepository() })
	})
}
