package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"lotolab/events"
	"lotolab/models"
)

// MockDrawRepository is a mock implementation of DrawRepository
type MockDrawRepository struct {
	mock.Mock
}

func (m *MockDrawRepository) GetByGame(ctx context.Context, game models.Game) ([]models.Draw, error) {
	args := m.Called(ctx, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Draw), args.Error(1)
}

func (m *MockDrawRepository) GetLatest(ctx context.Context, game models.Game) (*models.Draw, error) {
	args := m.Called(ctx, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Draw), args.Error(1)
}

func (m *MockDrawRepository) Insert(ctx context.Context, draw *models.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawRepository) Exists(ctx context.Context, game models.Game, date time.Time) (bool, error) {
	args := m.Called(ctx, game, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockDrawRepository) Count(ctx context.Context, game models.Game) (int, error) {
	args := m.Called(ctx, game)
	return args.Int(0), args.Error(1)
}

// MockCombinationRepository is a mock implementation of CombinationRepository
type MockCombinationRepository struct {
	mock.Mock
}

func (m *MockCombinationRepository) Save(ctx context.Context, combos []models.Combination) error {
	args := m.Called(ctx, combos)
	return args.Error(0)
}

func (m *MockCombinationRepository) GetRecent(ctx context.Context, game models.Game, limit int) ([]models.Combination, error) {
	args := m.Called(ctx, game, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Combination), args.Error(1)
}

// MockBacktestRepository is a mock implementation of BacktestRepository
type MockBacktestRepository struct {
	mock.Mock
}

func (m *MockBacktestRepository) Save(ctx context.Context, results []models.StrategyResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockBacktestRepository) GetLatestRun(ctx context.Context, game models.Game) ([]models.StrategyResult, error) {
	args := m.Called(ctx, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StrategyResult), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	Draws        *MockDrawRepository
	Combinations *MockCombinationRepository
	Backtests    *MockBacktestRepository
	Events       *MockEventPublisher
}

// NewMockUnitOfWork creates a unit of work with all repositories mocked
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Draws:        &MockDrawRepository{},
		Combinations: &MockCombinationRepository{},
		Backtests:    &MockBacktestRepository{},
		Events:       &MockEventPublisher{},
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) DrawRepository() DrawRepository {
	return m.Draws
}

func (m *MockUnitOfWork) CombinationRepository() CombinationRepository {
	return m.Combinations
}

func (m *MockUnitOfWork) BacktestRepository() BacktestRepository {
	return m.Backtests
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Events
}

// MockUnitOfWorkFactory is a mock factory returning a fixed unit of work
type MockUnitOfWorkFactory struct {
	UnitOfWork *MockUnitOfWork
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	return f.UnitOfWork
}
