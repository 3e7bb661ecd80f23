package lore

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category selector is out of range.
var ErrUnknownCategory = errors.New("unknown lore category")

// Category identifies one family of lore text on the remote API.
type Category struct {
	// Key is the field name used for this category in the local cache file.
	Key string

	// Source is the value of the Source filter (the game sheet name).
	Source string

	// Context is the value of the Context filter (the sheet's text column).
	Context string
}

// The three categories quotes are drawn from.
//
//nolint:gochecknoglobals // Fixed lookup values.
var (
	NPCYell = Category{Key: "npc_yell", Source: "NPCYell", Context: "NpcYell_Text"}
	Minion  = Category{Key: "minion", Source: "Companion", Context: "Companion_Description"}
	Mount   = Category{Key: "mount", Source: "Mount", Context: "Mount_Description"}
)

// Categories returns every category in selector order: 0 npc_yell, 1 minion, 2 mount.
func Categories() []Category {
	return []Category{NPCYell, Minion, Mount}
}

// CategoryAt returns the category for a selector index.
func CategoryAt(index int) (Category, error) {
	all := Categories()
	if index < 0 || index >= len(all) {
		return Category{}, fmt.Errorf("%w: selector %d", ErrUnknownCategory, index)
	}
	return all[index], nil
}

// String returns the cache key of the category.
func (c Category) String() string {
	return c.Key
}
