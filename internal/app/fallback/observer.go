package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/domain/trail"
)

// Observer fans tier transitions out to logs, the event sink, metrics and
// the optional audit log. Every field is optional.
type Observer struct {
	Logger  *slog.Logger
	Events  ports.EventSink
	Metrics ports.GenerationMetrics
	Audit   ports.GenerationLogRepository
	Now     func() time.Time
}

func (o Observer) now() func() time.Time {
	if o.Now == nil {
		return time.Now
	}
	return o.Now
}

func (o Observer) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Observer) publish(ctx context.Context, evt ports.Event) {
	if o.Events == nil {
		return
	}
	evt.ID = uuid.NewString()
	evt.OccurredAt = o.now()()
	o.Events.Publish(ctx, evt)
}

// Publish sends a use-case level event through the same sink.
func (o Observer) Publish(ctx context.Context, evt ports.Event) {
	o.publish(ctx, evt)
}

func (o Observer) tierFailed(ctx context.Context, feature, backend string, source trail.DataSource, err error) {
	o.logger().WarnContext(ctx, "generation tier failed",
		"feature", feature,
		"backend", backend,
		"data_source", source,
		"error", err)
	if o.Metrics != nil {
		o.Metrics.RecordTierFailure(feature, backend)
	}
	o.publish(ctx, ports.Event{
		Kind:       ports.EventTierFailed,
		Level:      ports.LevelWarn,
		Feature:    feature,
		Backend:    backend,
		DataSource: string(source),
		Message:    fmt.Sprintf("%s via %s failed: %v", feature, backend, err),
	})
}

func (o Observer) tierSucceeded(ctx context.Context, feature, backend string, source trail.DataSource) {
	o.logger().DebugContext(ctx, "generation tier succeeded",
		"feature", feature,
		"backend", backend,
		"data_source", source)
	if source == trail.SourcePrimary {
		return
	}
	o.publish(ctx, ports.Event{
		Kind:       ports.EventTierSucceeded,
		Level:      ports.LevelInfo,
		Feature:    feature,
		Backend:    backend,
		DataSource: string(source),
		Message:    fmt.Sprintf("%s served by fallback %s", feature, backend),
	})
}

func (o Observer) hardcoded(ctx context.Context, feature string) {
	o.logger().InfoContext(ctx, "generation fell back to hardcoded pool", "feature", feature)
	o.publish(ctx, ports.Event{
		Kind:       ports.EventHardcoded,
		Level:      ports.LevelWarn,
		Feature:    feature,
		DataSource: string(trail.SourceHardcoded),
		Message:    fmt.Sprintf("%s is running on canned content", feature),
	})
}

func (o Observer) resolved(ctx context.Context, feature string, source trail.DataSource, attempts []ports.TierAttempt, took time.Duration) {
	if o.Metrics != nil {
		o.Metrics.RecordGeneration(feature, source)
	}
	if o.Audit == nil {
		return
	}
	record := ports.GenerationRecord{
		ID:         uuid.NewString(),
		Feature:    feature,
		DataSource: source,
		Attempts:   attempts,
		DurationMS: took.Milliseconds(),
		CreatedAt:  o.now()(),
	}
	if err := o.Audit.Save(context.WithoutCancel(ctx), record); err != nil {
		o.logger().ErrorContext(ctx, "save generation record", "feature", feature, "error", err)
	}
}
