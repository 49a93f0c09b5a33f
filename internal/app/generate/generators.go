// Package generate wires each game feature onto a fallback chain of AI tiers
// ending in the hardcoded content pools.
package generate

import (
	"context"
	"math/rand/v2"

	"hipstertrail/internal/app/aicall"
	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/prompt"
	"hipstertrail/internal/app/schema"
	"hipstertrail/internal/content"
	"hipstertrail/internal/domain/trail"
)

const (
	FeatureName       = "name"
	FeatureBio        = "bio"
	FeatureLoot       = "loot"
	FeatureScenario   = "scenario"
	FeatureTransport  = "transport"
	FeatureUpcycle    = "upcycled_item"
	FeatureAvatar     = "avatar"
	FeatureSceneImage = "scene_image"
	FeatureBadgeImage = "badge_image"
)

const (
	textTemperature     = 0.9
	scenarioTemperature = 1.0
	upcycleTemperature  = 0.8
)

// Backends holds the configured AI services. A nil field is an unconfigured
// tier and always fails over.
type Backends struct {
	Chat      ports.TextBackend
	Proxy     ports.TextBackend
	Gemini    ports.TextBackend
	Diffusion ports.ImageBackend
}

type Generators struct {
	Backends Backends
	Schemas  *schema.Validator
	Prompts  *prompt.Renderer
	Catalog  content.Catalog
	Observer fallback.Observer
	IntN     trail.IntN
}

func (g *Generators) intn() trail.IntN {
	if g.IntN == nil {
		return rand.IntN
	}
	return g.IntN
}

func backendName(b interface{ Name() string }, fallbackName string) string {
	if b == nil {
		return fallbackName
	}
	return b.Name()
}

// textTier renders tmpl with data and asks backend for a schema-checked T.
// Rendering happens inside the tier so a template failure is a tier
// failure, not a crash.
func textTier[T any](g *Generators, backend ports.TextBackend, label, schemaName, tmpl string, data prompt.Data, temperature float64) fallback.Tier[T] {
	return fallback.Tier[T]{
		Backend: backendName(backend, label),
		Run: func(ctx context.Context) (T, error) {
			var zero T
			if backend == nil {
				return zero, ports.ErrBackendNotConfigured
			}
			system, err := g.Prompts.Render(prompt.System, data)
			if err != nil {
				return zero, err
			}
			text, err := g.Prompts.Render(tmpl, data)
			if err != nil {
				return zero, err
			}
			return aicall.InvokeJSON[T](ctx, backend, g.Schemas, schemaName, ports.TextRequest{
				System:      system,
				Prompt:      text,
				Temperature: temperature,
			})
		},
	}
}

func imageTier(backend ports.ImageBackend, req ports.ImageRequest) fallback.Tier[string] {
	return fallback.Tier[string]{
		Backend: backendName(backend, "diffusion"),
		Run: func(ctx context.Context) (string, error) {
			return aicall.InvokeImage(ctx, backend, req)
		},
	}
}

// mapTier adapts a tier's value without touching its failure semantics.
func mapTier[A, B any](t fallback.Tier[A], f func(A) (B, error)) fallback.Tier[B] {
	return fallback.Tier[B]{
		Backend: t.Backend,
		Run: func(ctx context.Context) (B, error) {
			var zero B
			v, err := t.Run(ctx)
			if err != nil {
				return zero, err
			}
			return f(v)
		},
	}
}
