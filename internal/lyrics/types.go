package lyrics

import (
	"context"
	"strings"
	"time"

	"github.com/sukalov/romagic/internal/lyrics/lang"
)

// Track identifies a song either by title and artist or by ISRC.
type Track struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	ISRC   string `json:"isrc,omitempty"`
}

// Raw is lyrics text as a provider returned it.
type Raw struct {
	Text string `json:"text"`
	// Language is the provider-declared language identifier, resolved later.
	Language string `json:"language"`
	// PreRomanized marks a community romanization that needs no transliteration.
	PreRomanized bool   `json:"pre_romanized"`
	Source       string `json:"source"`
	URL          string `json:"url,omitempty"`
}

// FetchResult is the outcome of a source lookup. A result with Found unset is
// the normal "lyrics not found" outcome; Reason says why.
type FetchResult struct {
	Lyrics    Raw       `json:"lyrics"`
	Found     bool      `json:"found"`
	Reason    string    `json:"reason,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Found wraps raw lyrics in a successful FetchResult.
func Found(raw Raw) FetchResult {
	return FetchResult{Lyrics: raw, Found: true, FetchedAt: time.Now()}
}

// NotFound builds a FetchResult for missing lyrics.
func NotFound(reason string) FetchResult {
	return FetchResult{Reason: reason, FetchedAt: time.Now()}
}

// LinePair is one non-blank original line and its romanization.
type LinePair struct {
	Original  string `json:"original"`
	Romanized string `json:"romanized"`
}

// Result is the romanization of one set of lyrics. Romanized and Pairs are
// nil unless IsRomanized is set; Pairs is empty, not nil, for blank text.
type Result struct {
	IsRomanized bool       `json:"is_romanized"`
	Original    string     `json:"original"`
	Romanized   *string    `json:"romanized,omitempty"`
	Pairs       []LinePair `json:"pairs"`
}

// TitleSource finds lyrics by song title and artist.
type TitleSource interface {
	Fetch(ctx context.Context, title, artist string) FetchResult
}

// CatalogSource finds lyrics by recording identifier (ISRC).
type CatalogSource interface {
	Fetch(ctx context.Context, isrc string) FetchResult
}

// Transliterator converts text in a supported language to Latin script.
type Transliterator interface {
	Transliterate(text string, tag lang.Tag) string
}

// Text renders the result for reading: each original line followed by its
// romanization, pairs separated by a blank line. Unromanized results render
// as the original text.
func (r Result) Text() string {
	if !r.IsRomanized {
		return r.Original
	}
	blocks := make([]string, 0, len(r.Pairs))
	for _, pair := range r.Pairs {
		if pair.Original == pair.Romanized {
			blocks = append(blocks, pair.Original)
			continue
		}
		blocks = append(blocks, pair.Original+"\n"+pair.Romanized)
	}
	return strings.Join(blocks, "\n\n")
}
