// Package musixmatch looks lyrics up by ISRC in the Musixmatch catalog.
package musixmatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Musixmatch API root.
const DefaultBaseURL = "https://api.musixmatch.com/ws/1.1"

// ErrNotFound is returned when the catalog has no entry for an ISRC.
var ErrNotFound = errors.New("musixmatch: not found")

// Lyrics is a catalog lyrics body.
type Lyrics struct {
	ID       int64  `json:"lyrics_id"`
	Body     string `json:"lyrics_body"`
	Language string `json:"lyrics_language"`
}

// Track is catalog metadata for a recording.
type Track struct {
	ID         int64  `json:"track_id"`
	Name       string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name"`
	HasLyrics  int    `json:"has_lyrics"`
}

// TranslatedLine is one community translation of a lyrics line.
type TranslatedLine struct {
	Original   string `json:"snippet"`
	Translated string `json:"description"`
	Language   string `json:"language"`
}

type envelope struct {
	Message struct {
		Header struct {
			StatusCode int `json:"status_code"`
		} `json:"header"`
		Body json.RawMessage `json:"body"`
	} `json:"message"`
}

// Client is a minimal Musixmatch API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

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

// New creates a Musixmatch client. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("musixmatch api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lyrics returns the lyrics body of the recording with the given ISRC.
func (c *Client) Lyrics(ctx context.Context, isrc string) (Lyrics, error) {
	var body struct {
		Lyrics *Lyrics `json:"lyrics"`
	}
	if err := c.get(ctx, "matcher.lyrics.get", isrc, nil, &body); err != nil {
		return Lyrics{}, err
	}
	if body.Lyrics == nil {
		return Lyrics{}, ErrNotFound
	}
	return *body.Lyrics, nil
}

// Track returns catalog metadata of the recording with the given ISRC.
func (c *Client) Track(ctx context.Context, isrc string) (Track, error) {
	var body struct {
		Track *Track `json:"track"`
	}
	if err := c.get(ctx, "matcher.track.get", isrc, nil, &body); err != nil {
		return Track{}, err
	}
	if body.Track == nil {
		return Track{}, ErrNotFound
	}
	return *body.Track, nil
}

// Translation returns the line translations of the recording into language,
// a two-letter code such as "en". ErrNotFound means no translation exists.
func (c *Client) Translation(ctx context.Context, isrc, language string) ([]TranslatedLine, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return nil, errors.New("translation language must not be empty")
	}
	var body struct {
		Translations []struct {
			Translation TranslatedLine `json:"translation"`
		} `json:"translations_list"`
	}
	params := url.Values{}
	params.Set("selected_language", language)
	params.Set("comment_format", "text")
	if err := c.get(ctx, "crowd.track.translations.get", isrc, params, &body); err != nil {
		return nil, err
	}

	lines := make([]TranslatedLine, 0, len(body.Translations))
	for _, item := range body.Translations {
		if strings.TrimSpace(item.Translation.Translated) == "" {
			continue
		}
		lines = append(lines, item.Translation)
	}
	if len(lines) == 0 {
		return nil, ErrNotFound
	}
	return lines, nil
}

func (c *Client) get(ctx context.Context, method, isrc string, extra url.Values, out any) error {
	isrc = strings.TrimSpace(isrc)
	if isrc == "" {
		return errors.New("isrc must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/" + method)
	if err != nil {
		return fmt.Errorf("parse musixmatch url: %w", err)
	}
	params := url.Values{}
	for key, values := range extra {
		params[key] = values
	}
	params.Set("track_isrc", isrc)
	params.Set("apikey", c.apiKey)
	params.Set("format", "json")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("musixmatch %s returned %d (latency=%v)", method, resp.StatusCode, latency)
	}

	var payload envelope
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode musixmatch response: %w", err)
	}

	// The API reports errors in the envelope header and sends an empty
	// array as body, so the body is only decoded on success.
	switch status := payload.Message.Header.StatusCode; status {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("musixmatch %s status %d", method, status)
	}
	if err := json.Unmarshal(payload.Message.Body, out); err != nil {
		return fmt.Errorf("decode musixmatch body: %w", err)
	}
	return nil
}

// FormatTranslation renders translations as original/translated line pairs.
func FormatTranslation(lines []TranslatedLine) string {
	blocks := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Original == "" {
			blocks = append(blocks, line.Translated)
			continue
		}
		blocks = append(blocks, line.Original+"\n"+line.Translated)
	}
	return strings.Join(blocks, "\n\n")
}
