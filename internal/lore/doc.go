// Package lore is a minimal client for the XIVAPI lore search endpoint.
//
// It knows the three text categories xivquote draws quotes from, renders the
// comma-separated Filters parameter the endpoint expects, and decodes the
// paginated response envelope. A request targets either a whole category
// (used to learn the category's ResultsTotal) or one randomly drawn SourceID
// inside the cached range.
package lore
