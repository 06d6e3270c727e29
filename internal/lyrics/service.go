package lyrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sukalov/romagic/internal/logger"
)

// Lyrics is a fetched and romanized set of lyrics.
type Lyrics struct {
	Track     Track     `json:"track"`
	Source    string    `json:"source"`
	URL       string    `json:"url,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Result
}

// Service fetches lyrics from a source and romanizes them.
type Service struct {
	engine  Transliterator
	titles  TitleSource
	catalog CatalogSource
}

// NewService wires the transliteration engine and lyrics sources. Either
// source may be nil when that lookup is not configured.
func NewService(engine Transliterator, titles TitleSource, catalog CatalogSource) *Service {
	return &Service{engine: engine, titles: titles, catalog: catalog}
}

// ByTitle looks lyrics up by title and artist. The second return is false
// when no lyrics were found; nothing is romanized in that case.
func (s *Service) ByTitle(ctx context.Context, title, artist string) (*Lyrics, bool) {
	traceID := uuid.NewString()
	logger.Debug(fmt.Sprintf("[%s] ByTitle called with title: %q, artist: %q", traceID, title, artist))

	if s.titles == nil {
		logger.Debug(fmt.Sprintf("[%s] title lookup is not configured", traceID))
		return nil, false
	}

	res := s.titles.Fetch(ctx, title, artist)
	return s.finish(traceID, Track{Title: title, Artist: artist}, res)
}

// ByISRC looks lyrics up by recording identifier.
func (s *Service) ByISRC(ctx context.Context, isrc string) (*Lyrics, bool) {
	traceID := uuid.NewString()
	logger.Debug(fmt.Sprintf("[%s] ByISRC called with isrc: %q", traceID, isrc))

	if s.catalog == nil {
		logger.Debug(fmt.Sprintf("[%s] catalog lookup is not configured", traceID))
		return nil, false
	}

	res := s.catalog.Fetch(ctx, isrc)
	return s.finish(traceID, Track{ISRC: strings.TrimSpace(isrc)}, res)
}

func (s *Service) finish(traceID string, track Track, res FetchResult) (*Lyrics, bool) {
	if !res.Found {
		logger.Debug(fmt.Sprintf("[%s] lyrics not found: %s", traceID, res.Reason))
		return nil, false
	}

	result := Romanize(s.engine, res.Lyrics)
	logger.Debug(fmt.Sprintf("[%s] lyrics from %s\nLanguage: %s\nRomanized: %v\nLines: %d",
		traceID, res.Lyrics.Source, res.Lyrics.Language, result.IsRomanized, len(result.Pairs)))

	return &Lyrics{
		Track:     track,
		Source:    res.Lyrics.Source,
		URL:       res.Lyrics.URL,
		FetchedAt: res.FetchedAt,
		Result:    result,
	}, true
}

type firstFound []CatalogSource

// FirstFound returns a catalog source that asks each catalog in order and
// returns the first hit. The reason of the last miss is kept.
func FirstFound(catalogs ...CatalogSource) CatalogSource {
	var list firstFound
	for _, c := range catalogs {
		if c != nil {
			list = append(list, c)
		}
	}
	return list
}

func (f firstFound) Fetch(ctx context.Context, isrc string) FetchResult {
	res := NotFound("no catalog configured")
	for _, c := range f {
		res = c.Fetch(ctx, isrc)
		if res.Found {
			return res
		}
	}
	return res
}

// Cache stores raw lyrics between lookups.
type Cache interface {
	Get(ctx context.Context, key string) (Raw, bool, error)
	Set(ctx context.Context, key string, raw Raw) error
}

// TitleCacheKey is the cache key of a title and artist lookup.
func TitleCacheKey(title, artist string) string {
	normalize := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return "title:" + normalize(title) + "|" + normalize(artist)
}

// CachedTitleSource serves title lookups from a cache and fills it from the
// wrapped source. Only found lyrics are cached; cache errors fall through to
// the source.
type CachedTitleSource struct {
	source TitleSource
	cache  Cache
}

var _ TitleSource = (*CachedTitleSource)(nil)

func NewCachedTitleSource(source TitleSource, cache Cache) *CachedTitleSource {
	return &CachedTitleSource{source: source, cache: cache}
}

func (c *CachedTitleSource) Fetch(ctx context.Context, title, artist string) FetchResult {
	key := TitleCacheKey(title, artist)

	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Error(fmt.Sprintf("Lyrics cache read failed\nKey: %s\nError: %v", key, err))
	} else if ok {
		logger.Debug(fmt.Sprintf("Lyrics cache hit for %s", key))
		return Found(raw)
	}

	res := c.source.Fetch(ctx, title, artist)
	if !res.Found {
		return res
	}
	if err := c.cache.Set(ctx, key, res.Lyrics); err != nil {
		logger.Error(fmt.Sprintf("Lyrics cache write failed\nKey: %s\nError: %v", key, err))
	}
	return res
}
