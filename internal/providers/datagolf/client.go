package datagolf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/providers"
)

// Config controls how the Data Golf client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	Tour       string
	HTTPClient *http.Client
}

// Client fetches golf feeds from the Data Golf API and maps them to the
// normalized provider types.
type Client struct {
	baseURL    string
	apiKey     string
	tour       string
	httpClient httpDoer
}

// NewClient constructs a Data Golf client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		tour:       resolveTour(cfg.Tour),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchField retrieves the current event's field list with tee times.
func (c *Client) FetchField(ctx context.Context) (*providers.Field, error) {
	var payload fieldResponse
	params := url.Values{}
	params.Set("tour", c.tour)
	if err := c.getJSON(ctx, pathFieldUpdates, params, &payload); err != nil {
		return nil, err
	}
	return mapField(payload), nil
}

// FetchLive retrieves in-play scoring and finish probabilities.
func (c *Client) FetchLive(ctx context.Context) (*providers.Live, error) {
	var payload inPlayResponse
	params := url.Values{}
	params.Set("tour", c.tour)
	params.Set("dead_heat", "no")
	params.Set("odds_format", "percent")
	if err := c.getJSON(ctx, pathInPlay, params, &payload); err != nil {
		return nil, err
	}
	return mapLive(payload), nil
}

// FetchRankings retrieves the global skill rankings.
func (c *Client) FetchRankings(ctx context.Context) ([]providers.Ranking, error) {
	var payload rankingsResponse
	if err := c.getJSON(ctx, pathRankings, url.Values{}, &payload); err != nil {
		return nil, err
	}
	return mapRankings(payload), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	params.Set("file_format", "json")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("datagolf: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
