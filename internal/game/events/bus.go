package events

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus delivers events synchronously on the publishing goroutine.
// Subscribers run in subscription order, then function handlers registered
// for the event's type. Delivery happens outside the bus lock, so a handler
// may subscribe or publish.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  []Subscriber
	funcHandlers map[string][]EventHandler
	logger       zerolog.Logger
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]EventHandler),
		logger:       log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers subscriber. A subscriber with the same ID is replaced
// in place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, existing := range eb.subscribers {
		if existing.ID() == subscriber.ID() {
			eb.subscribers[i] = subscriber
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)

	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// SubscribeFunc registers handler for events of eventType.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)
}

// On registers a handler that receives eventType events as T. Events of
// eventType that are not a T are skipped.
func On[T Event](eb *EventBus, eventType string, handler func(T)) {
	eb.SubscribeFunc(eventType, func(e Event) {
		if typed, ok := e.(T); ok {
			handler(typed)
		}
	})
}

// Publish delivers event to every interested subscriber and handler. A
// panicking receiver is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	subscribers := make([]Subscriber, 0, len(eb.subscribers))
	for _, s := range eb.subscribers {
		if s.InterestedIn(eventType) {
			subscribers = append(subscribers, s)
		}
	}
	handlers := append([]EventHandler(nil), eb.funcHandlers[eventType]...)
	eb.mu.RUnlock()

	eb.logger.Trace().
		Str("event_type", eventType).
		Str("run_id", event.RunID()).
		Int("receivers", len(subscribers)+len(handlers)).
		Msg("Publishing event")

	for _, s := range subscribers {
		eb.deliver(event, s.ID(), s.HandleEvent)
	}
	for _, h := range handlers {
		eb.deliver(event, "func", h)
	}
}

func (eb *EventBus) deliver(event Event, receiver string, handle EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	handle(event)
}
