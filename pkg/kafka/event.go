package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// envelopeVersion is bumped whenever the envelope layout changes.
const envelopeVersion = 1

// Aggregate names the entity an event is about. Its ID is the partition key.
type Aggregate struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Event is the envelope of every message the storefront publishes.
type Event struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Aggregate     Aggregate       `json:"aggregate"`
	Version       int             `json:"version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Source        string          `json:"source"`
	SessionID     string          `json:"session_id,omitempty"`
	UserID        string          `json:"user_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent wraps data in an envelope stamped with a fresh ID and the current UTC time.
func NewEvent(eventType string, agg Aggregate, source string, data any) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &Event{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Aggregate:  agg,
		Version:    envelopeVersion,
		OccurredAt: time.Now().UTC(),
		Source:     source,
		Data:       payload,
	}, nil
}

// ForSession attributes the event to a browser session and, when signed in, a user.
func (e *Event) ForSession(sessionID, userID string) *Event {
	e.SessionID = sessionID
	e.UserID = userID
	return e
}

// WithCorrelationID ties the event to the request that caused it.
func (e *Event) WithCorrelationID(id string) *Event {
	e.CorrelationID = id
	return e
}

// Key is the partition key. Events for one aggregate stay ordered.
func (e *Event) Key() []byte {
	return []byte(e.Aggregate.ID)
}

// Headers lists the routing headers consumers filter on without decoding the body.
func (e *Event) Headers() []kafka.Header {
	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(e.EventType)},
		{Key: "source", Value: []byte(e.Source)},
	}
	for _, h := range []struct{ key, value string }{
		{"correlation_id", e.CorrelationID},
		{"session_id", e.SessionID},
	} {
		if h.value != "" {
			headers = append(headers, kafka.Header{Key: h.key, Value: []byte(h.value)})
		}
	}
	return headers
}

// Marshal serializes the envelope to JSON.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalData decodes the payload into target.
func (e *Event) UnmarshalData(target any) error {
	return json.Unmarshal(e.Data, target)
}
