// Package fallback resolves a feature through ranked tiers: each AI tier is
// tried once in order and the hardcoded pool answers when all of them fail.
package fallback

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/domain/trail"
)

const tracerName = "hipstertrail/fallback"

type Tier[T any] struct {
	Backend string
	Run     func(ctx context.Context) (T, error)
}

// Chain lists the AI tiers of one feature in rank order. The first tier is
// tagged primary, later ones fallback.
type Chain[T any] struct {
	Feature   string
	Tiers     []Tier[T]
	Hardcoded func() T
}

type Result[T any] struct {
	Value      T                `json:"value"`
	DataSource trail.DataSource `json:"data_source"`
}

func sourceFor(index int) trail.DataSource {
	if index == 0 {
		return trail.SourcePrimary
	}
	return trail.SourceFallback
}

// Resolve never fails: any tier error, including a cancelled context,
// moves on to the next tier and ends at the hardcoded value.
func Resolve[T any](ctx context.Context, obs Observer, chain Chain[T]) Result[T] {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fallback."+chain.Feature)
	defer span.End()
	span.SetAttributes(attribute.String("feature", chain.Feature), attribute.Int("tiers", len(chain.Tiers)))

	now := obs.now()
	started := now()
	attempts := make([]ports.TierAttempt, 0, len(chain.Tiers))

	for i, tier := range chain.Tiers {
		source := sourceFor(i)
		tierCtx, tierSpan := otel.Tracer(tracerName).Start(ctx, "tier."+tier.Backend, trace.WithSpanKind(trace.SpanKindClient))
		tierSpan.SetAttributes(attribute.String("backend", tier.Backend), attribute.String("data_source", string(source)))

		at := now()
		value, err := runTier(tierCtx, tier)
		attempt := ports.TierAttempt{
			Backend:  tier.Backend,
			Source:   string(source),
			Duration: now().Sub(at).Milliseconds(),
		}
		if err != nil {
			attempt.Error = err.Error()
			attempts = append(attempts, attempt)
			tierSpan.RecordError(err)
			tierSpan.SetStatus(codes.Error, "tier failed")
			tierSpan.End()
			obs.tierFailed(ctx, chain.Feature, tier.Backend, source, err)
			continue
		}
		attempts = append(attempts, attempt)
		tierSpan.End()

		obs.tierSucceeded(ctx, chain.Feature, tier.Backend, source)
		obs.resolved(ctx, chain.Feature, source, attempts, now().Sub(started))
		span.SetAttributes(attribute.String("data_source", string(source)))
		return Result[T]{Value: value, DataSource: source}
	}

	obs.hardcoded(ctx, chain.Feature)
	obs.resolved(ctx, chain.Feature, trail.SourceHardcoded, attempts, now().Sub(started))
	span.SetAttributes(attribute.String("data_source", string(trail.SourceHardcoded)))
	return Result[T]{Value: chain.Hardcoded(), DataSource: trail.SourceHardcoded}
}

func runTier[T any](ctx context.Context, tier Tier[T]) (value T, err error) {
	if tier.Run == nil {
		return value, ports.ErrBackendNotConfigured
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tier %s panicked: %v", tier.Backend, r)
		}
	}()
	return tier.Run(ctx)
}
