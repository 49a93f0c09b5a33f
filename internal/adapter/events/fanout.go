// Package events composes event sinks.
package events

import (
	"context"

	"hipstertrail/internal/app/ports"
)

// Fanout publishes every event to each non-nil sink in order.
type Fanout []ports.EventSink

func (f Fanout) Publish(ctx context.Context, evt ports.Event) {
	for _, sink := range f {
		if sink != nil {
			sink.Publish(ctx, evt)
		}
	}
}
