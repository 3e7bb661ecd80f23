package lore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ErrEmptyIDRange is returned when a cached total leaves no SourceID to draw.
// A total of N allows SourceIDs 1..N-1, so N == 1 has nothing to pick.
var ErrEmptyIDRange = errors.New("no source id available to draw")

// Query describes a single lore request.
type Query struct {
	Category Category

	// SourceID constrains the request to one entry. Zero means unconstrained.
	SourceID int
}

// NewQuery builds the query for category given its cached total.
//
// A total of 0 means the total is unknown and yields an unconstrained query.
// Otherwise a SourceID is drawn uniformly from [1, total) using roller.
func NewQuery(category Category, total uint16, roller dice.Roller) (Query, error) {
	q := Query{Category: category}
	if total == 0 {
		return q, nil
	}
	if total == 1 {
		return Query{}, fmt.Errorf("%w: %s has a cached total of 1", ErrEmptyIDRange, category.Key)
	}

	// Roll(n) yields 1..n, so Roll(total-1) covers [1, total).
	id, err := roller.Roll(int(total) - 1)
	if err != nil {
		return Query{}, fmt.Errorf("drawing source id for %s: %w", category.Key, err)
	}
	q.SourceID = id
	return q, nil
}

// Filter renders the Filters query parameter, e.g.
// "Source=Companion,Context=Companion_Description,SourceID=7".
func (q Query) Filter() string {
	parts := []string{
		"Source=" + q.Category.Source,
		"Context=" + q.Category.Context,
	}
	if q.SourceID > 0 {
		parts = append(parts, "SourceID="+strconv.Itoa(q.SourceID))
	}
	return strings.Join(parts, ",")
}
