// Package quote runs the xivquote workflow: make sure the category totals are
// cached, pick a category at random, fetch one of its entries and turn the
// response into the text to print.
package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/justadataconstruct/xivquote/internal/cache"
	"github.com/justadataconstruct/xivquote/internal/logging"
	"github.com/justadataconstruct/xivquote/internal/lore"
)

// FallbackText is printed when a lore query succeeds but returns no entries.
const FallbackText = "Have you heard of the critically acclaimed MMORPG Final Fantasy XIV? " +
	"With an expanded free trial which you can play through the entirety of A Realm Reborn " +
	"and the award-winning Heavensward expansion up to level 60 for free with no restrictions on playtime."

// Config holds the dependencies of a Service.
type Config struct {
	Fetcher lore.Fetcher

	// Roller picks the category. Defaults to dice.DefaultRoller.
	Roller dice.Roller
}

// Validate checks that the required dependencies are set.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("quote config is required")
	}
	if c.Fetcher == nil {
		return errors.New("lore fetcher is required")
	}
	return nil
}

// Service produces quotes.
type Service struct {
	fetcher lore.Fetcher
	roller  dice.Roller
}

// NewService creates a Service from cfg.
func NewService(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Service{fetcher: cfg.Fetcher, roller: roller}, nil
}

// Input describes one invocation.
type Input struct {
	// CachePath is the category counts cache file.
	CachePath string

	// Arg is the first positional CLI argument, or "".
	Arg string

	// OnRefresh, when set, is called before the cache is rebuilt.
	OnRefresh func()
}

// Result is the outcome of Run or Quote.
type Result struct {
	Category lore.Category
	Counts   cache.CategoryCounts
	Text     string

	// Fallback is set when the query returned no entries and Text is FallbackText.
	Fallback bool

	// Refreshed is set when the cache was rebuilt during this run.
	Refreshed bool
}

// Run refreshes the cache if needed, loads the counts and fetches a quote.
func (s *Service) Run(ctx context.Context, in Input) (*Result, error) {
	log := logging.FromContext(ctx)

	refreshed := false
	if cache.NeedsRefresh(in.CachePath, in.Arg) {
		if in.OnRefresh != nil {
			in.OnRefresh()
		}
		if _, err := cache.Refresh(ctx, in.CachePath, s.fetcher); err != nil {
			return nil, fmt.Errorf("refreshing cache: %w", err)
		}
		refreshed = true
	}

	counts, err := cache.Load(in.CachePath)
	if err != nil {
		return nil, fmt.Errorf("loading cache: %w", err)
	}
	log.Debug().
		Ctx(ctx).
		Str("component", "quote").
		Uint16("npc_yell", counts.NPCYell).
		Uint16("minion", counts.Minion).
		Uint16("mount", counts.Mount).
		Bool("refreshed", refreshed).
		Msg("category counts loaded")

	result, err := s.Quote(ctx, counts)
	if err != nil {
		return nil, err
	}
	result.Refreshed = refreshed
	return result, nil
}

// PickCategory draws a category uniformly from npc_yell, minion and mount.
func (s *Service) PickCategory() (lore.Category, error) {
	n, err := s.roller.Roll(len(lore.Categories()))
	if err != nil {
		return lore.Category{}, fmt.Errorf("picking category: %w", err)
	}
	return lore.CategoryAt(n - 1)
}

// Quote picks a category and fetches one entry from it using counts.
func (s *Service) Quote(ctx context.Context, counts cache.CategoryCounts) (*Result, error) {
	category, err := s.PickCategory()
	if err != nil {
		return nil, err
	}
	total, err := counts.For(category)
	if err != nil {
		return nil, err
	}

	resp, err := s.fetcher.Fetch(ctx, category, total)
	if err != nil {
		return nil, fmt.Errorf("fetching %s quote: %w", category.Key, err)
	}

	text, fallback := Text(resp)
	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "quote").
		Str("category", category.Key).
		Uint16("total", total).
		Bool("fallback", fallback).
		Msg("quote selected")

	return &Result{
		Category: category,
		Counts:   counts,
		Text:     text,
		Fallback: fallback,
	}, nil
}

// Text returns the first entry's text, or FallbackText (and true) when there is none.
func Text(resp *lore.Response) (string, bool) {
	if text, ok := resp.First(); ok {
		return text, false
	}
	return FallbackText, true
}
