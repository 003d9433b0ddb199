package topstats

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Trailing slashes are stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient supplies a custom HTTP client. Apply before WithTimeout if
// both are used.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithPageLimit sets how many rows ranking and search queries ask for. Values
// are clamped to the service maximum of 500.
func WithPageLimit(limit int) Option {
	return func(c *Client) {
		if limit > MaxPageLimit {
			limit = MaxPageLimit
		}
		if limit > 0 {
			c.pageLimit = limit
		}
	}
}

// WithUnitSystem sets the display-unit preference attached to every request.
func WithUnitSystem(units UnitSystem) Option {
	return func(c *Client) {
		c.units = units
	}
}

// WithRateLimit enables a local request limiter. The client does not throttle
// by default; the service enforces its own limits and surfaces them as
// RatelimitError.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}
