package lore

//go:generate mockgen -destination=mock/mock_fetcher.go -package=loremock github.com/justadataconstruct/xivquote/internal/lore Fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/justadataconstruct/xivquote/internal/logging"
	"github.com/justadataconstruct/xivquote/pkg/version"
)

// DefaultEndpoint is the XIVAPI lore search endpoint.
const DefaultEndpoint = "https://xivapi.com/lore"

// maxErrorBodyBytes caps how much of a failed response body is kept for diagnostics.
const maxErrorBodyBytes = 512

// Fetcher fetches lore for a category given the category's cached total.
type Fetcher interface {
	Fetch(ctx context.Context, category Category, total uint16) (*Response, error)
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "lore API bad response: " + e.Status
	}
	return fmt.Sprintf("lore API bad response: %s: %s", e.Status, e.Body)
}

// Client talks to the lore endpoint over HTTP.
type Client struct {
	// HTTPClient performs the requests. Tests swap in an httptest client.
	HTTPClient *http.Client

	// Endpoint is the full lore URL, without query parameters.
	Endpoint string

	// Roller draws SourceIDs.
	Roller dice.Roller
}

// Config holds the settings for NewClient.
type Config struct {
	// Endpoint overrides DefaultEndpoint when non-empty.
	Endpoint string

	// Timeout bounds each request. Zero leaves the transport default (no timeout).
	Timeout time.Duration

	// Roller overrides dice.DefaultRoller when non-nil.
	Roller dice.Roller
}

// NewClient creates a lore client from cfg.
func NewClient(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Endpoint:   endpoint,
		Roller:     roller,
	}
}

// Fetch draws a query for category from its cached total and executes it.
func (c *Client) Fetch(ctx context.Context, category Category, total uint16) (*Response, error) {
	q, err := NewQuery(category, total, c.Roller)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, q)
}

// Do executes q and decodes the response envelope.
func (c *Client) Do(ctx context.Context, q Query) (*Response, error) {
	log := logging.FromContext(ctx)

	reqURL, err := c.requestURL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating lore request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	log.Debug().
		Ctx(ctx).
		Str("component", "lore").
		Str("category", q.Category.Key).
		Str("filters", q.Filter()).
		Msg("requesting lore")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting lore for %s: %w", q.Category.Key, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Ctx(ctx).
		Str("component", "lore").
		Int("status", resp.StatusCode).
		Dur("duration_ms", time.Since(start)).
		Msg("lore response received")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var out Response
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
		return nil, fmt.Errorf("wrong lore JSON structure: %w", decodeErr)
	}
	return &out, nil
}

// requestURL appends the Filters and Columns parameters to the endpoint.
func (c *Client) requestURL(q Query) (string, error) {
	if c.Endpoint == "" {
		return "", errors.New("lore endpoint is not configured")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing lore endpoint %q: %w", c.Endpoint, err)
	}
	params := u.Query()
	params.Set("Filters", q.Filter())
	params.Set("Columns", "Text")
	u.RawQuery = params.Encode()
	return u.String(), nil
}
