package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/prompt"
	"hipstertrail/internal/app/schema"
	"hipstertrail/internal/content"
	"hipstertrail/internal/domain/trail"
)

type nameResponse struct {
	Name string `json:"name"`
}

type bioResponse struct {
	Bio string `json:"bio"`
}

type transportResponse struct {
	Phrase string `json:"phrase"`
}

func trimmed(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty text", ports.ErrMalformedPayload)
	}
	return s, nil
}

func (g *Generators) Name(ctx context.Context, player trail.PlayerState) fallback.Result[string] {
	data := prompt.Data{Player: player}
	pick := func(r nameResponse) (string, error) { return trimmed(r.Name) }
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[string]{
		Feature: FeatureName,
		Tiers: []fallback.Tier[string]{
			mapTier(textTier[nameResponse](g, g.Backends.Chat, "chat", schema.Name, prompt.Name, data, textTemperature), pick),
			mapTier(textTier[nameResponse](g, g.Backends.Proxy, "proxy", schema.Name, prompt.Name, data, textTemperature), pick),
		},
		Hardcoded: func() string { return content.Pick(g.intn(), g.Catalog.Names) },
	})
}

func (g *Generators) Bio(ctx context.Context, player trail.PlayerState) fallback.Result[string] {
	data := prompt.Data{Player: player}
	pick := func(r bioResponse) (string, error) { return trimmed(r.Bio) }
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[string]{
		Feature: FeatureBio,
		Tiers: []fallback.Tier[string]{
			mapTier(textTier[bioResponse](g, g.Backends.Chat, "chat", schema.Bio, prompt.Bio, data, textTemperature), pick),
			mapTier(textTier[bioResponse](g, g.Backends.Proxy, "proxy", schema.Bio, prompt.Bio, data, textTemperature), pick),
		},
		Hardcoded: func() string { return content.Pick(g.intn(), g.Catalog.Bios) },
	})
}

// Transport has no secondary AI tier; the proxy is its primary.
func (g *Generators) Transport(ctx context.Context, player trail.PlayerState) fallback.Result[string] {
	data := prompt.Data{Player: player}
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[string]{
		Feature: FeatureTransport,
		Tiers: []fallback.Tier[string]{
			mapTier(textTier[transportResponse](g, g.Backends.Proxy, "proxy", schema.Transport, prompt.Transport, data, textTemperature),
				func(r transportResponse) (string, error) { return trimmed(r.Phrase) }),
		},
		Hardcoded: func() string { return content.Pick(g.intn(), g.Catalog.Transports) },
	})
}

func (g *Generators) Loot(ctx context.Context, player trail.PlayerState) fallback.Result[trail.LootItem] {
	data := prompt.Data{Player: player}
	accept := func(item trail.LootItem) (trail.LootItem, error) {
		item.ID = uuid.NewString()
		if err := item.Validate(); err != nil {
			return trail.LootItem{}, fmt.Errorf("%w: %v", ports.ErrMalformedPayload, err)
		}
		return item, nil
	}
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[trail.LootItem]{
		Feature: FeatureLoot,
		Tiers: []fallback.Tier[trail.LootItem]{
			mapTier(textTier[trail.LootItem](g, g.Backends.Chat, "chat", schema.Loot, prompt.Loot, data, textTemperature), accept),
			mapTier(textTier[trail.LootItem](g, g.Backends.Proxy, "proxy", schema.Loot, prompt.Loot, data, textTemperature), accept),
		},
		Hardcoded: func() trail.LootItem {
			item := content.Pick(g.intn(), g.Catalog.Loot).Item()
			item.ID = uuid.NewString()
			return item
		},
	})
}

// Avatar returns a generated portrait or a kaomoji from the pool.
func (g *Generators) Avatar(ctx context.Context, player trail.PlayerState) fallback.Result[string] {
	tier := fallback.Tier[string]{
		Backend: backendName(g.Backends.Diffusion, "diffusion"),
		Run: func(ctx context.Context) (string, error) {
			text, err := g.Prompts.Render(prompt.Avatar, prompt.Data{Player: player})
			if err != nil {
				return "", err
			}
			return imageTier(g.Backends.Diffusion, ports.ImageRequest{Prompt: text}).Run(ctx)
		},
	}
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[string]{
		Feature:   FeatureAvatar,
		Tiers:     []fallback.Tier[string]{tier},
		Hardcoded: func() string { return content.Pick(g.intn(), g.Catalog.Avatars) },
	})
}
