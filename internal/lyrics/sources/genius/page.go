package genius

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/sukalov/romagic/internal/logger"
)

// PageClient downloads lyrics pages with browser-like headers.
type PageClient struct {
	httpClient *http.Client
	userAgent  string
	breaker    *gobreaker.CircuitBreaker
}

var _ PageFetcher = (*PageClient)(nil)

// NewPageClient creates a page client. A zero timeout means 60 seconds.
func NewPageClient(timeout time.Duration) *PageClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PageClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
					MaxVersion: tls.VersionTLS13,
				},
			},
		},
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		breaker:   newBreaker("genius-pages"),
	}
}

// WithPageHTTPClient returns a copy of the client that uses httpClient.
func (c *PageClient) WithPageHTTPClient(httpClient *http.Client) *PageClient {
	clone := *c
	if httpClient != nil {
		clone.httpClient = httpClient
	}
	return &clone
}

// FetchPage fetches the HTML content from the given URL.
func (c *PageClient) FetchPage(ctx context.Context, url string) (string, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *PageClient) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to create HTTP request\nURL: %s\nError: %v", url, err))
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Referer", "https://www.google.com/")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to fetch page\nURL: %s\nError: %v", url, err))
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error(fmt.Sprintf("HTTP error fetching page\nURL: %s\nStatus: %d", url, resp.StatusCode))
		return "", fmt.Errorf("fetch page: %w", &StatusError{Code: resp.StatusCode})
	}

	var reader io.Reader = resp.Body

	// Accept-Encoding is set by hand, so the transport leaves gzip bodies alone.
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to create gzip reader\nURL: %s\nError: %v", url, err))
			return "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to read response body\nURL: %s\nError: %v", url, err))
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
