package ports

import (
	"context"
	"time"
)

type EventLevel string

const (
	LevelInfo  EventLevel = "info"
	LevelWarn  EventLevel = "warn"
	LevelError EventLevel = "error"
)

type EventKind string

const (
	EventTierSucceeded EventKind = "tier_succeeded"
	EventTierFailed    EventKind = "tier_failed"
	EventHardcoded     EventKind = "hardcoded_used"
	EventTurnCompleted EventKind = "turn_completed"
	EventTurnFailed    EventKind = "turn_failed"
	EventUpcycled      EventKind = "item_upcycled"
)

type Event struct {
	ID         string     `json:"id"`
	Kind       EventKind  `json:"kind"`
	Level      EventLevel `json:"level"`
	Feature    string     `json:"feature,omitempty"`
	Backend    string     `json:"backend,omitempty"`
	DataSource string     `json:"data_source,omitempty"`
	Message    string     `json:"message"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// EventSink receives diagnostic notifications. Implementations must be safe
// for concurrent use and must not block callers on slow consumers.
type EventSink interface {
	Publish(ctx context.Context, evt Event)
}
