package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventUserRegistered = "user_registered"
	EventUserBanned     = "user_banned"
	EventBetPlaced      = "bet_placed"
	EventBetDeleted     = "bet_deleted"
	EventMatchResultSet = "match_result_set"
	EventMatchExpired   = "match_expired"
)

// BetEventPayload — минимальный снимок ставки для подписчиков.
type BetEventPayload struct {
	UserID       int64  `json:"user_id"`
	MatchID      int64  `json:"match_id"`
	TournamentID int64  `json:"tournament_id,omitempty"`
	Score        string `json:"score,omitempty"`
}

// UserEventPayload — снимок пользователя для подписчиков.
type UserEventPayload struct {
	TelegramID int64  `json:"telegram_id"`
	Login      string `json:"login,omitempty"`
	Banned     bool   `json:"banned,omitempty"`
}

// MatchEventPayload — снимок матча для подписчиков.
type MatchEventPayload struct {
	MatchID      int64  `json:"match_id"`
	TournamentID int64  `json:"tournament_id"`
	Result       string `json:"result,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
