package musixmatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sukalov/romagic/internal/logger"
	"github.com/sukalov/romagic/internal/lyrics"
)

// SourceName labels lyrics obtained from Musixmatch.
const SourceName = "musixmatch"

// LyricsGetter fetches catalog lyrics by ISRC.
type LyricsGetter interface {
	Lyrics(ctx context.Context, isrc string) (Lyrics, error)
}

// Source is the ISRC-keyed lyrics source backed by Musixmatch.
type Source struct {
	client LyricsGetter
}

var _ lyrics.CatalogSource = (*Source)(nil)

// NewSource wraps a catalog client.
func NewSource(client LyricsGetter) *Source {
	return &Source{client: client}
}

// Fetch returns the catalog body verbatim with its declared language, "en"
// when the catalog omits one. Missing entries, transport errors and empty
// bodies are reported as not found.
func (s *Source) Fetch(ctx context.Context, isrc string) lyrics.FetchResult {
	isrc = strings.TrimSpace(isrc)
	if isrc == "" {
		return lyrics.NotFound("empty isrc")
	}

	found, err := s.client.Lyrics(ctx, isrc)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Debug(fmt.Sprintf("Musixmatch has no lyrics for ISRC %s", isrc))
		return lyrics.NotFound("isrc not in catalog")
	case err != nil:
		logger.Error(fmt.Sprintf("Musixmatch lookup failed\nISRC: %s\nError: %v", isrc, err))
		return lyrics.NotFound("catalog lookup failed")
	}

	if strings.TrimSpace(found.Body) == "" {
		return lyrics.NotFound("empty lyrics body")
	}

	language := strings.TrimSpace(found.Language)
	if language == "" {
		language = "en"
	}

	return lyrics.Found(lyrics.Raw{
		Text:     found.Body,
		Language: language,
		Source:   SourceName,
	})
}
