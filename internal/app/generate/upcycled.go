package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hipstertrail/internal/app/fallback"
	"hipstertrail/internal/app/ports"
	"hipstertrail/internal/app/prompt"
	"hipstertrail/internal/app/schema"
	"hipstertrail/internal/content"
	"hipstertrail/internal/domain/trail"
)

var titleCase = cases.Title(language.English)

// UpcycledItem invents the attributes of the item crafted from items. The
// returned quality is target; the domain enforces it again on completion.
func (g *Generators) UpcycledItem(ctx context.Context, player trail.PlayerState, items []trail.LootItem, target trail.Quality) fallback.Result[trail.LootItem] {
	var source trail.Quality
	if len(items) > 0 {
		source = items[0].Quality
	}
	data := prompt.Data{Player: player, Items: items, Source: source, Target: target}
	accept := func(item trail.LootItem) (trail.LootItem, error) {
		item.ID = uuid.NewString()
		item.Quality = target
		if !item.Type.Valid() && len(items) > 0 {
			item.Type = items[0].Type
		}
		if err := item.Validate(); err != nil {
			return trail.LootItem{}, fmt.Errorf("%w: %v", ports.ErrMalformedPayload, err)
		}
		return item, nil
	}
	return fallback.Resolve(ctx, g.Observer, fallback.Chain[trail.LootItem]{
		Feature: FeatureUpcycle,
		Tiers: []fallback.Tier[trail.LootItem]{
			mapTier(textTier[trail.LootItem](g, g.Backends.Chat, "chat", schema.Upcycle, prompt.Upcycle, data, upcycleTemperature), accept),
		},
		Hardcoded: func() trail.LootItem { return g.derivedItem(items, target) },
	})
}

// derivedItem builds the crafted item from its inputs: a pool prefix and
// suffix around the first input's base noun, modifiers summed.
func (g *Generators) derivedItem(items []trail.LootItem, target trail.Quality) trail.LootItem {
	intn := g.intn()
	parts := g.Catalog.Upcycle
	item := trail.LootItem{
		ID:         uuid.NewString(),
		Quality:    target,
		FlavorText: content.Pick(intn, parts.FlavorTexts),
		Modifiers:  map[string]int{},
	}
	noun := "Find"
	if len(items) > 0 {
		base := items[0]
		item.Type = base.Type
		if fields := strings.Fields(base.Name); len(fields) > 0 {
			noun = fields[len(fields)-1]
		}
	}
	item.Name = titleCase.String(content.Pick(intn, parts.Prefixes) + " " + noun + " " + content.Pick(intn, parts.Suffixes))
	for _, in := range items {
		for stat, delta := range in.Modifiers {
			item.Modifiers[stat] += delta
		}
	}
	return item
}
