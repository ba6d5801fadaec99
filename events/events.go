package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"lotolab/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeDrawsImported         EventType = "draws_imported"
	EventTypeCombinationsGenerated EventType = "combinations_generated"
	EventTypeBacktestCompleted     EventType = "backtest_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// DrawsImportedEvent fires after a batch of draws is persisted
type DrawsImportedEvent struct {
	Game     models.Game
	Imported int
	Skipped  int
}

func (e DrawsImportedEvent) Type() EventType {
	return EventTypeDrawsImported
}

// CombinationsGeneratedEvent fires after combinations are generated
type CombinationsGeneratedEvent struct {
	Game       models.Game
	Strategy   string
	Count      int
	Persisted  bool
}

func (e CombinationsGeneratedEvent) Type() EventType {
	return EventTypeCombinationsGenerated
}

// BacktestCompletedEvent fires after a backtest run finishes
type BacktestCompletedEvent struct {
	Game       models.Game
	Strategies int
	Best       string // name of the top-ranked strategy
}

func (e BacktestCompletedEvent) Type() EventType {
	return EventTypeBacktestCompleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events until the surrounding unit of work
// commits, then flushes them to the real bus
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events, called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events, called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
