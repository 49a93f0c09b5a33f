package trail

import (
	"errors"
	"fmt"
)

type ItemSlot string

const (
	SlotHeadwear  ItemSlot = "headwear"
	SlotEyewear   ItemSlot = "eyewear"
	SlotOuterwear ItemSlot = "outerwear"
	SlotFootwear  ItemSlot = "footwear"
	SlotAccessory ItemSlot = "accessory"
)

var ItemSlots = []ItemSlot{SlotHeadwear, SlotEyewear, SlotOuterwear, SlotFootwear, SlotAccessory}

func (s ItemSlot) Valid() bool {
	for _, slot := range ItemSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Quality is ordered: Thrifted < Artisanal < One-of-One.
type Quality string

const (
	QualityThrifted  Quality = "Thrifted"
	QualityArtisanal Quality = "Artisanal"
	QualityOneOfOne  Quality = "One-of-One"
)

var qualityRank = map[Quality]int{
	QualityThrifted:  1,
	QualityArtisanal: 2,
	QualityOneOfOne:  3,
}

func (q Quality) Rank() int {
	return qualityRank[q]
}

func (q Quality) Valid() bool {
	return q.Rank() > 0
}

// Next returns the tier above q; ok is false at the top tier.
func (q Quality) Next() (Quality, bool) {
	switch q {
	case QualityThrifted:
		return QualityArtisanal, true
	case QualityArtisanal:
		return QualityOneOfOne, true
	default:
		return "", false
	}
}

type LootItem struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       ItemSlot       `json:"type"`
	Quality    Quality        `json:"quality"`
	FlavorText string         `json:"flavorText"`
	Modifiers  map[string]int `json:"modifiers,omitempty"`
}

var ErrInvalidItem = errors.New("invalid loot item")

func (i LootItem) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidItem)
	}
	if !i.Type.Valid() {
		return fmt.Errorf("%w: unknown slot %q", ErrInvalidItem, i.Type)
	}
	if !i.Quality.Valid() {
		return fmt.Errorf("%w: unknown quality %q", ErrInvalidItem, i.Quality)
	}
	for stat := range i.Modifiers {
		if !IsStatName(stat) {
			return fmt.Errorf("%w: unknown modifier %q", ErrInvalidItem, stat)
		}
	}
	return nil
}

func IsStatName(name string) bool {
	switch name {
	case "hunger", "style", "irony", "authenticity":
		return true
	default:
		return false
	}
}
