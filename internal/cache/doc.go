// Package cache persists the per-category entry totals reported by the lore API.
//
// The cache is a single pretty-printed JSON file,
// <user cache dir>/justadataconstruct.xiv_quote/cache.json, holding one count per
// category. It exists so a normal run can draw a SourceID without first asking the
// API how many entries a category has. The file is rewritten wholesale on refresh
// and never partially updated.
package cache
