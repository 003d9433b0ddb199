package topstats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the topstats.gg Discord API root.
	DefaultBaseURL = "https://api.topstats.gg/discord"

	// DefaultTimeout is the HTTP timeout applied when none is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultPageLimit is how many rows ranking and search queries ask for.
	DefaultPageLimit = 100

	// MaxPageLimit is the largest row count the service accepts.
	MaxPageLimit = 500

	defaultUserAgent  = "topstats-go (github.com/top-stats/topstats-go)"
	defaultRetryAfter = 30 * time.Second
)

// Client wraps the topstats.gg API. A Client is safe for concurrent use; all
// operations share one underlying HTTP transport until Close is called.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	pageLimit  int
	units      UnitSystem
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
	closed     atomic.Bool
}

// NewClient creates a new topstats client. Construction performs no network
// I/O; use TestConnection to verify the token.
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	client := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		userAgent:  defaultUserAgent,
		pageLimit:  DefaultPageLimit,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close marks the client closed and releases idle connections. Close is
// idempotent; every operation afterwards fails with ErrClientClosed. In-flight
// requests are not interrupted.
func (c *Client) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.httpClient.CloseIdleConnections()
}

// TestConnection verifies that the service is reachable and the token is
// accepted, using the cheapest ranking query available.
func (c *Client) TestConnection(ctx context.Context) error {
	params := SortBy{Metric: MetricServerCount}.query()
	params.Set("limit", "1")

	var payload struct {
		Data []PartialBot `json:"data"`
	}
	if err := c.get(ctx, "/rankings/bots", params, &payload); err != nil {
		return fmt.Errorf("failed to connect to topstats: %w", err)
	}
	return nil
}

// get performs one authenticated GET against the API and decodes the JSON
// body into v. All error mapping lives here: 429 becomes RatelimitError,
// other non-2xx statuses and transport failures become RequestError.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if c.closed.Load() {
		return ErrClientClosed
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{Message: "request cancelled while waiting for rate limiter", Err: err}
		}
	}

	if token := c.units.Token(); token != "" {
		if params == nil {
			params = url.Values{}
		}
		params.Set("units", token)
	}

	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &RequestError{Message: "failed to create request", Err: err}
	}

	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("url", requestURL).Msg("Making topstats API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return ratelimitError(resp, body)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    apiMessage(body, resp.Status),
		}
	}

	if v != nil {
		if err := json.Unmarshal(body, v); err != nil {
			return &RequestError{
				StatusCode: resp.StatusCode,
				Message:    "failed to decode response",
				Err:        err,
			}
		}
	}

	return nil
}

// apiMessage extracts the service-provided error message from a body, falling
// back to the HTTP status line.
func apiMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}

// ratelimitError builds a RatelimitError from a 429 response. The hint comes
// from the Retry-After header in seconds, or the body's expiresIn field in
// milliseconds, or a default when the service provides neither.
func ratelimitError(resp *http.Response, body []byte) *RatelimitError {
	retryAfter := defaultRetryAfter

	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.ParseFloat(header, 64); err == nil && seconds > 0 {
			retryAfter = time.Duration(seconds * float64(time.Second))
		}
	} else {
		var payload struct {
			ExpiresIn int64 `json:"expiresIn"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.ExpiresIn > 0 {
			retryAfter = time.Duration(payload.ExpiresIn) * time.Millisecond
		}
	}

	return &RatelimitError{
		RetryAfter: retryAfter,
		Message:    apiMessage(body, resp.Status),
	}
}

// GetBot fetches a ranked bot by its ID.
func (c *Client) GetBot(ctx context.Context, id int64) (*Bot, error) {
	if id <= 0 {
		return nil, ErrInvalidBotID
	}

	var bot Bot
	if err := c.get(ctx, fmt.Sprintf("/bots/%d", id), nil, &bot); err != nil {
		return nil, err
	}
	return &bot, nil
}

// GetUserBots fetches the ranked bots owned by a user. Bots moved to a team
// stay attributed to the user's account, so ownership data may lag reality.
func (c *Client) GetUserBots(ctx context.Context, id int64) ([]Bot, error) {
	if id <= 0 {
		return nil, ErrInvalidBotID
	}

	var payload struct {
		Bots []Bot `json:"bots"`
	}
	if err := c.get(ctx, fmt.Sprintf("/users/%d/bots", id), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Bots, nil
}

// GetTopBots fetches the bots ranked highest for the given sort selection
// within a time period. PeriodAllTime requests the service default window.
// Row count is controlled by WithPageLimit.
func (c *Client) GetTopBots(ctx context.Context, sortBy SortBy, period Period) ([]PartialBot, error) {
	params := sortBy.query()
	params.Set("limit", strconv.Itoa(c.pageLimit))
	if period != PeriodAllTime {
		params.Set("timeFrame", period.Token())
	}

	var payload struct {
		Data []PartialBot `json:"data"`
	}
	if err := c.get(ctx, "/rankings/bots", params, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// SearchBots fetches bots matching a name and/or tag filter in the service's
// relevance order. At least one filter is required; no matches is an empty
// slice, not an error.
func (c *Client) SearchBots(ctx context.Context, name, tag string) ([]PartialBot, error) {
	if name == "" && tag == "" {
		return nil, ErrNoSearchCriteria
	}

	params := url.Values{}
	if name != "" {
		params.Set("name", name)
	}
	if tag != "" {
		params.Set("tag", tag)
	}
	params.Set("limit", strconv.Itoa(c.pageLimit))

	var payload struct {
		Data []PartialBot `json:"data"`
	}
	if err := c.get(ctx, "/bots/search", params, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// GetRecentBotStats fetches a bot's sampled activity for the past 30 hours
// and the past month.
func (c *Client) GetRecentBotStats(ctx context.Context, id int64) (*RecentBotStats, error) {
	if id <= 0 {
		return nil, ErrInvalidBotID
	}

	var stats RecentBotStats
	if err := c.get(ctx, fmt.Sprintf("/bots/%d/recent", id), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
