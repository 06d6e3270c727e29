package lyrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sukalov/romagic/internal/lyrics"
)

type fakeTitles struct {
	res   lyrics.FetchResult
	calls int
}

func (f *fakeTitles) Fetch(context.Context, string, string) lyrics.FetchResult {
	f.calls++
	return f.res
}

type fakeCatalog struct {
	res   lyrics.FetchResult
	calls int
}

func (f *fakeCatalog) Fetch(context.Context, string) lyrics.FetchResult {
	f.calls++
	return f.res
}

func TestServiceByTitle(t *testing.T) {
	stub := newStub()
	titles := &fakeTitles{res: lyrics.Found(lyrics.Raw{
		Text:     "こんにちは\n\n[Chorus]\nさようなら",
		Language: "ja",
		Source:   "genius",
		URL:      "https://genius.com/x",
	})}

	got, ok := lyrics.NewService(stub, titles, nil).ByTitle(context.Background(), "Song", "Artist")
	if !ok {
		t.Fatal("expected lyrics")
	}
	if got.Track.Title != "Song" || got.Track.Artist != "Artist" || got.Source != "genius" || got.URL != "https://genius.com/x" {
		t.Fatalf("unexpected metadata %+v", got)
	}
	if !got.IsRomanized || len(got.Pairs) != 3 {
		t.Fatalf("unexpected result %+v", got.Result)
	}
}

func TestServiceNotFoundSkipsEngine(t *testing.T) {
	stub := newStub()
	titles := &fakeTitles{res: lyrics.NotFound("no search results")}

	got, ok := lyrics.NewService(stub, titles, nil).ByTitle(context.Background(), "Song", "Artist")
	if ok || got != nil {
		t.Fatalf("expected not found, got %+v", got)
	}
	if stub.calls != 0 {
		t.Fatalf("engine called %d times on not found", stub.calls)
	}
}

func TestServiceByISRCEnglish(t *testing.T) {
	stub := newStub()
	catalog := &fakeCatalog{res: lyrics.Found(lyrics.Raw{Text: "Hello world", Language: "en", Source: "musixmatch"})}

	got, ok := lyrics.NewService(stub, nil, catalog).ByISRC(context.Background(), " USXX00000001 ")
	if !ok {
		t.Fatal("expected lyrics")
	}
	if got.IsRomanized || got.Original != "Hello world" || got.Romanized != nil || got.Pairs != nil {
		t.Fatalf("unexpected result %+v", got.Result)
	}
	if got.Track.ISRC != "USXX00000001" {
		t.Fatalf("unexpected track %+v", got.Track)
	}
	if stub.calls != 0 {
		t.Fatalf("engine called %d times for english", stub.calls)
	}
}

func TestServiceUnconfiguredSources(t *testing.T) {
	svc := lyrics.NewService(newStub(), nil, nil)
	if _, ok := svc.ByTitle(context.Background(), "a", "b"); ok {
		t.Fatal("expected not found without a title source")
	}
	if _, ok := svc.ByISRC(context.Background(), "X"); ok {
		t.Fatal("expected not found without a catalog")
	}
}

func TestFirstFound(t *testing.T) {
	miss := &fakeCatalog{res: lyrics.NotFound("local miss")}
	hit := &fakeCatalog{res: lyrics.Found(lyrics.Raw{Text: "Hello world"})}
	never := &fakeCatalog{res: lyrics.Found(lyrics.Raw{Text: "unused"})}

	res := lyrics.FirstFound(miss, nil, hit, never).Fetch(context.Background(), "X")
	if !res.Found || res.Lyrics.Text != "Hello world" {
		t.Fatalf("unexpected result %+v", res)
	}
	if miss.calls != 1 || hit.calls != 1 || never.calls != 0 {
		t.Fatalf("calls = %d, %d, %d", miss.calls, hit.calls, never.calls)
	}

	res = lyrics.FirstFound(miss).Fetch(context.Background(), "X")
	if res.Found || res.Reason != "local miss" {
		t.Fatalf("expected last miss reason, got %+v", res)
	}
	if res := lyrics.FirstFound().Fetch(context.Background(), "X"); res.Found {
		t.Fatal("expected not found with no catalogs")
	}
}

type memoryCache struct {
	items  map[string]lyrics.Raw
	getErr error
	sets   int
}

func (m *memoryCache) Get(_ context.Context, key string) (lyrics.Raw, bool, error) {
	if m.getErr != nil {
		return lyrics.Raw{}, false, m.getErr
	}
	raw, ok := m.items[key]
	return raw, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, raw lyrics.Raw) error {
	m.sets++
	m.items[key] = raw
	return nil
}

func TestCachedTitleSource(t *testing.T) {
	cache := &memoryCache{items: map[string]lyrics.Raw{}}
	source := &fakeTitles{res: lyrics.Found(lyrics.Raw{Text: "歌", Language: "ja"})}
	cached := lyrics.NewCachedTitleSource(source, cache)

	first := cached.Fetch(context.Background(), "Lemon", "Kenshi Yonezu")
	second := cached.Fetch(context.Background(), " lemon ", "KENSHI  yonezu")
	if !first.Found || !second.Found || second.Lyrics.Text != "歌" {
		t.Fatalf("unexpected results %+v %+v", first, second)
	}
	if source.calls != 1 || cache.sets != 1 {
		t.Fatalf("source calls = %d, cache sets = %d", source.calls, cache.sets)
	}
}

func TestCachedTitleSourceSkipsMisses(t *testing.T) {
	cache := &memoryCache{items: map[string]lyrics.Raw{}}
	source := &fakeTitles{res: lyrics.NotFound("no hits")}
	cached := lyrics.NewCachedTitleSource(source, cache)

	cached.Fetch(context.Background(), "a", "b")
	cached.Fetch(context.Background(), "a", "b")
	if source.calls != 2 || cache.sets != 0 {
		t.Fatalf("source calls = %d, cache sets = %d", source.calls, cache.sets)
	}
}

func TestCachedTitleSourceReadError(t *testing.T) {
	cache := &memoryCache{items: map[string]lyrics.Raw{}, getErr: errors.New("connection refused")}
	source := &fakeTitles{res: lyrics.Found(lyrics.Raw{Text: "x"})}

	res := lyrics.NewCachedTitleSource(source, cache).Fetch(context.Background(), "a", "b")
	if !res.Found || source.calls != 1 {
		t.Fatalf("expected fall through to source, got %+v", res)
	}
}

func TestTitleCacheKey(t *testing.T) {
	if a, b := lyrics.TitleCacheKey("Lemon", "Kenshi Yonezu"), lyrics.TitleCacheKey(" LEMON", "kenshi   yonezu "); a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
	if lyrics.TitleCacheKey("a b", "") == lyrics.TitleCacheKey("a", "b") {
		t.Fatal("title and artist must not run together")
	}
}
