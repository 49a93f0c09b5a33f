package events

import (
	"context"
	"testing"

	"hipstertrail/internal/app/ports"
)

type countingSink struct{ n int }

func (c *countingSink) Publish(context.Context, ports.Event) { c.n++ }

func TestFanout_PublishesToEverySink(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	Fanout{a, nil, b}.Publish(context.Background(), ports.Event{Kind: ports.EventHardcoded})
	if a.n != 1 || b.n != 1 {
		t.Fatalf("expected each sink once, got a=%d b=%d", a.n, b.n)
	}
}
