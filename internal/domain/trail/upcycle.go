package trail

import (
	"errors"
	"fmt"
	"maps"
)

var ErrUpcycleNotAllowed = errors.New("upcycle not allowed")

// UpcycleTarget reports the tier an upcycle of items would produce. It
// requires exactly UpcycleBatchSize valid items sharing one quality below
// the top tier.
func UpcycleTarget(items []LootItem) (Quality, error) {
	if len(items) != UpcycleBatchSize {
		return "", fmt.Errorf("%w: need %d items, got %d", ErrUpcycleNotAllowed, UpcycleBatchSize, len(items))
	}
	quality := items[0].Quality
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUpcycleNotAllowed, err)
		}
		if item.Quality != quality {
			return "", fmt.Errorf("%w: mixed qualities %q and %q", ErrUpcycleNotAllowed, quality, item.Quality)
		}
		if item.ID != "" {
			if seen[item.ID] {
				return "", fmt.Errorf("%w: item %q selected twice", ErrUpcycleNotAllowed, item.ID)
			}
			seen[item.ID] = true
		}
	}
	next, ok := quality.Next()
	if !ok {
		return "", fmt.Errorf("%w: %q is already the top tier", ErrUpcycleNotAllowed, quality)
	}
	return next, nil
}

func CanUpcycle(items []LootItem) bool {
	_, err := UpcycleTarget(items)
	return err == nil
}

// ForgeUpcycle forces the crafted item onto the tier consumed items upgrade
// to, defaulting its slot to the consumed one.
func ForgeUpcycle(consumed []LootItem, crafted LootItem) (LootItem, error) {
	target, err := UpcycleTarget(consumed)
	if err != nil {
		return LootItem{}, err
	}
	crafted.Quality = target
	if !crafted.Type.Valid() {
		crafted.Type = consumed[0].Type
	}
	if err := crafted.Validate(); err != nil {
		return LootItem{}, err
	}
	return crafted, nil
}

// RemoveConsumed drops exactly one inventory entry per consumed item. Items
// with an ID match by ID; the rest match by value. A consumed item missing
// from the inventory refuses the whole upcycle.
func RemoveConsumed(inventory, consumed []LootItem) ([]LootItem, error) {
	taken := make([]bool, len(inventory))
	for _, item := range consumed {
		found := false
		for i, owned := range inventory {
			if taken[i] || !sameItem(owned, item) {
				continue
			}
			taken[i] = true
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: %q is not in the inventory", ErrUpcycleNotAllowed, item.Name)
		}
	}
	out := make([]LootItem, 0, len(inventory)-len(consumed))
	for i, item := range inventory {
		if !taken[i] {
			out = append(out, item)
		}
	}
	return out, nil
}

// CompleteUpcycle forges the crafted item and swaps it in for the three
// consumed inventory entries.
func CompleteUpcycle(inventory, consumed []LootItem, crafted LootItem) ([]LootItem, LootItem, error) {
	crafted, err := ForgeUpcycle(consumed, crafted)
	if err != nil {
		return nil, LootItem{}, err
	}
	out, err := RemoveConsumed(inventory, consumed)
	if err != nil {
		return nil, LootItem{}, err
	}
	return append(out, crafted), crafted, nil
}

func sameItem(a, b LootItem) bool {
	if a.ID != "" || b.ID != "" {
		return a.ID == b.ID
	}
	return a.Name == b.Name &&
		a.Type == b.Type &&
		a.Quality == b.Quality &&
		a.FlavorText == b.FlavorText &&
		maps.Equal(a.Modifiers, b.Modifiers)
}
