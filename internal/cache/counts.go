package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/justadataconstruct/xivquote/internal/lore"
)

// ErrMalformedCache is returned when the cache file does not match the expected schema.
var ErrMalformedCache = errors.New("malformed cache file")

// CategoryCounts holds the last-known total number of lore entries per category.
// A zero count means the total is unknown.
type CategoryCounts struct {
	NPCYell uint16 `json:"npc_yell"`
	Minion  uint16 `json:"minion"`
	Mount   uint16 `json:"mount"`
}

// For returns the count cached for category.
func (c CategoryCounts) For(category lore.Category) (uint16, error) {
	switch category.Key {
	case lore.NPCYell.Key:
		return c.NPCYell, nil
	case lore.Minion.Key:
		return c.Minion, nil
	case lore.Mount.Key:
		return c.Mount, nil
	default:
		return 0, fmt.Errorf("%w: %q", lore.ErrUnknownCategory, category.Key)
	}
}

// set stores total for category.
func (c *CategoryCounts) set(category lore.Category, total uint16) error {
	switch category.Key {
	case lore.NPCYell.Key:
		c.NPCYell = total
	case lore.Minion.Key:
		c.Minion = total
	case lore.Mount.Key:
		c.Mount = total
	default:
		return fmt.Errorf("%w: %q", lore.ErrUnknownCategory, category.Key)
	}
	return nil
}

// Decode parses a cache file body. Every field must be present.
func Decode(data []byte) (CategoryCounts, error) {
	var raw struct {
		NPCYell *uint16 `json:"npc_yell"`
		Minion  *uint16 `json:"minion"`
		Mount   *uint16 `json:"mount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return CategoryCounts{}, fmt.Errorf("%w: %w", ErrMalformedCache, err)
	}

	var missing []string
	if raw.NPCYell == nil {
		missing = append(missing, lore.NPCYell.Key)
	}
	if raw.Minion == nil {
		missing = append(missing, lore.Minion.Key)
	}
	if raw.Mount == nil {
		missing = append(missing, lore.Mount.Key)
	}
	if len(missing) > 0 {
		return CategoryCounts{}, fmt.Errorf("%w: missing field(s) %v", ErrMalformedCache, missing)
	}

	return CategoryCounts{NPCYell: *raw.NPCYell, Minion: *raw.Minion, Mount: *raw.Mount}, nil
}

// Encode renders counts as two-space indented JSON.
func Encode(counts CategoryCounts) ([]byte, error) {
	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache: %w", err)
	}
	return data, nil
}
