package genius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultBaseURL is the Genius API root.
const DefaultBaseURL = "https://api.genius.com"

// breakerThreshold is the number of consecutive failed requests that opens
// a breaker; it stays open for breakerCooldown.
const (
	breakerThreshold = 5
	breakerCooldown  = 30 * time.Second
)

// StatusError is a non-200 response from Genius.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("genius returned status %d", e.Code)
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerThreshold
		},
		IsSuccessful: healthy,
	})
}

// healthy tells the breaker which outcomes leave Genius in good standing:
// only transport errors, rate limiting and 5xx responses count as failures.
func healthy(err error) bool {
	if err == nil {
		return true
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code < http.StatusInternalServerError && status.Code != http.StatusTooManyRequests
	}
	return false
}

// Client calls the Genius search API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Genius API client authenticated with an access token.
func New(token, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("genius access token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    newBreaker("genius-api"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search returns the hits of a free-text search in provider order.
func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse genius url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.search(ctx, endpoint.String())
	})
	if err != nil {
		return nil, err
	}
	return out.([]Hit), nil
}

func (c *Client) search(ctx context.Context, endpoint string) ([]Hit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genius search (latency=%v): %w", latency, &StatusError{Code: resp.StatusCode})
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode genius response: %w", err)
	}
	hits := payload.Response.Hits
	if hits == nil {
		hits = []Hit{}
	}
	return hits, nil
}
