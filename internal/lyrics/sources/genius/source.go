// Package genius finds lyrics by title and artist through the Genius search
// API and scrapes them from the song page.
package genius

import (
	"context"
	"fmt"
	"strings"

	"github.com/sukalov/romagic/internal/logger"
	"github.com/sukalov/romagic/internal/lyrics"
	"github.com/sukalov/romagic/internal/lyrics/format"
	"github.com/sukalov/romagic/internal/lyrics/lang"
)

// SourceName labels lyrics obtained from Genius.
const SourceName = "genius"

// RomanizationsArtist is the curation account whose uploads are already
// romanized.
const RomanizationsArtist = "Genius Romanizations"

// Searcher runs a free-text song search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Hit, error)
}

// PageFetcher downloads a song page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Source is the title-based lyrics source backed by Genius.
type Source struct {
	searcher Searcher
	pages    PageFetcher
}

var _ lyrics.TitleSource = (*Source)(nil)

// NewSource wires a searcher and a page fetcher into a lyrics source.
func NewSource(searcher Searcher, pages PageFetcher) *Source {
	return &Source{searcher: searcher, pages: pages}
}

// SelectCandidate picks the hit to scrape: the first one credited to the
// romanization account, otherwise the first hit. It reports false for an
// empty hit list.
func SelectCandidate(hits []Hit) (Candidate, bool) {
	if len(hits) == 0 {
		return Candidate{}, false
	}
	chosen := hits[0]
	preRomanized := false
	for _, hit := range hits {
		if strings.Contains(hit.Result.PrimaryArtist.Name, RomanizationsArtist) {
			chosen = hit
			preRomanized = true
			break
		}
	}
	return Candidate{
		URL:          chosen.Result.URL,
		Title:        chosen.Result.FullTitle,
		Language:     chosen.Result.Language,
		PreRomanized: preRomanized,
	}, true
}

// Fetch searches for "<title> <artist>", scrapes the selected page and
// returns its lyrics with section headers separated. Every failure,
// including transport errors, is reported as not found.
func (s *Source) Fetch(ctx context.Context, title, artist string) lyrics.FetchResult {
	query := strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(artist))
	if query == "" {
		return lyrics.NotFound("empty query")
	}

	hits, err := s.searcher.Search(ctx, query)
	if err != nil {
		logger.Error(fmt.Sprintf("Genius search failed\nQuery: %s\nError: %v", query, err))
		return lyrics.NotFound("search failed")
	}

	candidate, ok := SelectCandidate(hits)
	if !ok {
		logger.Debug(fmt.Sprintf("Genius search returned no hits for %q", query))
		return lyrics.NotFound("no search results")
	}
	if candidate.URL == "" {
		return lyrics.NotFound("search result has no url")
	}

	page, err := s.pages.FetchPage(ctx, candidate.URL)
	if err != nil {
		return lyrics.NotFound("page fetch failed")
	}

	text, ok := ExtractLyrics(page)
	if !ok {
		logger.Debug(fmt.Sprintf("No lyrics container on %s", candidate.URL))
		return lyrics.NotFound("no lyrics on page")
	}

	language := candidate.Language
	if language == "" {
		language = lang.Detect(text)
	}

	return lyrics.Found(lyrics.Raw{
		Text:         format.Sections(text),
		Language:     language,
		PreRomanized: candidate.PreRomanized,
		Source:       SourceName,
		URL:          candidate.URL,
	})
}
