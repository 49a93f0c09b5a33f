package generate

import (
	"context"

	"github.com/google/uuid"

	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/prompt"
	"hipstertrail/internal/app/schema"
	"hipstertrail/internal/content"
	"hipstertrail/internal/domain/trail"
)

type scenarioResponse struct {
	Description      string       `json:"description"`
	Challenge        string       `json:"challenge"`
	Reward           string       `json:"reward"`
	Flavor           string       `json:"flavor"`
	SceneImagePrompt string       `json:"sceneImagePrompt"`
	Badge            *trail.Badge `json:"badge"`
}

func (r scenarioResponse) scenario() (trail.Scenario, error) {
	s := trail.Scenario{
		ID:               uuid.NewString(),
		Description:      r.Description,
		Challenge:        r.Challenge,
		Reward:           r.Reward,
		Flavor:           r.Flavor,
		SceneImagePrompt: r.SceneImagePrompt,
	}
	if r.Badge != nil {
		b := *r.Badge
		b.Image = ""
		s.Badge = &b
	}
	return s, nil
}

// scenarioSecondary prefers gemini when it is configured.
func (g *Generators) scenarioSecondary() (ports.TextBackend, string) {
	if g.Backends.Gemini != nil {
		return g.Backends.Gemini, "gemini"
	}
	return g.Backends.Proxy, "proxy"
}

// Scenario resolves the scenario text only. Images and choices are added by
// the turn.
func (g *Generators) Scenario(ctx context.Context, player trail.PlayerState) fallback.Result[trail.Scenario] {
	data := prompt.Data{Player: player}
	secondary, label := g.scenarioSecondary()
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[trail.Scenario]{
		Feature: FeatureScenario,
		Tiers: []fallback.Tier[trail.Scenario]{
			mapTier(textTier[scenarioResponse](g, g.Backends.Chat, "chat", schema.Scenario, prompt.Scenario, data, scenarioTemperature), scenarioResponse.scenario),
			mapTier(textTier[scenarioResponse](g, secondary, label, schema.Scenario, prompt.Scenario, data, scenarioTemperature), scenarioResponse.scenario),
		},
		Hardcoded: func() trail.Scenario {
			s := content.Pick(g.intn(), g.Catalog.Scenarios).Scenario()
			s.ID = uuid.NewString()
			return s
		},
	})
}

func (g *Generators) SceneImage(ctx context.Context, imagePrompt string) fallback.Result[string] {
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[string]{
		Feature:   FeatureSceneImage,
		Tiers:     []fallback.Tier[string]{imageTier(g.Backends.Diffusion, ports.ImageRequest{Prompt: imagePrompt})},
		Hardcoded: func() string { return content.Pick(g.intn(), g.Catalog.SceneImages) },
	})
}

func (g *Generators) BadgeImage(ctx context.Context, imagePrompt string) fallback.Result[string] {
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[string]{
		Feature:   FeatureBadgeImage,
		Tiers:     []fallback.Tier[string]{imageTier(g.Backends.Diffusion, ports.ImageRequest{Prompt: imagePrompt, Width: 256, Height: 256})},
		Hardcoded: func() string { return content.Pick(g.intn(), g.Catalog.BadgeImages) },
	})
}
