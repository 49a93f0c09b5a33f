// Package content holds the hardcoded pools served when every AI tier of a
// feature has failed.
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"hipstertrail/internal/domain/trail"
)

//go:embed catalog.yaml
var catalogYAML []byte

type ScenarioEntry struct {
	Description      string      `yaml:"description"`
	Challenge        string      `yaml:"challenge"`
	Reward           string      `yaml:"reward"`
	Flavor           string      `yaml:"flavor"`
	SceneImagePrompt string      `yaml:"sceneImagePrompt"`
	Badge            *BadgeEntry `yaml:"badge"`
}

type BadgeEntry struct {
	Emoji       string `yaml:"emoji"`
	Description string `yaml:"description"`
	ImagePrompt string `yaml:"imagePrompt"`
}

func (e ScenarioEntry) Scenario() trail.Scenario {
	s := trail.Scenario{
		Description:      e.Description,
		Challenge:        e.Challenge,
		Reward:           e.Reward,
		Flavor:           e.Flavor,
		SceneImagePrompt: e.SceneImagePrompt,
	}
	if e.Badge != nil {
		s.Badge = &trail.Badge{
			Emoji:       e.Badge.Emoji,
			Description: e.Badge.Description,
			ImagePrompt: e.Badge.ImagePrompt,
		}
	}
	return s
}

type LootEntry struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Quality    string         `yaml:"quality"`
	FlavorText string         `yaml:"flavorText"`
	Modifiers  map[string]int `yaml:"modifiers"`
}

func (e LootEntry) Item() trail.LootItem {
	mods := make(map[string]int, len(e.Modifiers))
	for k, v := range e.Modifiers {
		mods[k] = v
	}
	return trail.LootItem{
		Name:       e.Name,
		Type:       trail.ItemSlot(e.Type),
		Quality:    trail.Quality(e.Quality),
		FlavorText: e.FlavorText,
		Modifiers:  mods,
	}
}

type UpcycleParts struct {
	Prefixes    []string `yaml:"prefixes"`
	Suffixes    []string `yaml:"suffixes"`
	FlavorTexts []string `yaml:"flavorTexts"`
}

type Catalog struct {
	Names       []string        `yaml:"names"`
	Bios        []string        `yaml:"bios"`
	Transports  []string        `yaml:"transports"`
	Loot        []LootEntry     `yaml:"loot"`
	Scenarios   []ScenarioEntry `yaml:"scenarios"`
	Avatars     []string        `yaml:"avatars"`
	SceneImages []string        `yaml:"sceneImages"`
	BadgeImages []string        `yaml:"badgeImages"`
	Upcycle     UpcycleParts    `yaml:"upcycle"`
}

var ErrEmptyPool = errors.New("empty fallback pool")

// Parse decodes a catalog document and checks that no pool is empty.
func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog.yaml: %w", err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func Default() (Catalog, error) {
	return Parse(catalogYAML)
}

func MustDefault() Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func (c Catalog) validate() error {
	pools := map[string]int{
		"names":               len(c.Names),
		"bios":                len(c.Bios),
		"transports":          len(c.Transports),
		"loot":                len(c.Loot),
		"scenarios":           len(c.Scenarios),
		"avatars":             len(c.Avatars),
		"sceneImages":         len(c.SceneImages),
		"badgeImages":         len(c.BadgeImages),
		"upcycle.prefixes":    len(c.Upcycle.Prefixes),
		"upcycle.suffixes":    len(c.Upcycle.Suffixes),
		"upcycle.flavorTexts": len(c.Upcycle.FlavorTexts),
	}
	for name, n := range pools {
		if n == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyPool, name)
		}
	}
	for i, entry := range c.Loot {
		if err := entry.Item().Validate(); err != nil {
			return fmt.Errorf("catalog loot[%d]: %w", i, err)
		}
	}
	return nil
}

// Pick returns a uniformly chosen element of pool.
func Pick[T any](intn trail.IntN, pool []T) T {
	return pool[intn(len(pool))]
}
