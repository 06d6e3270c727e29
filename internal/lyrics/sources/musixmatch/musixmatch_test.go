package musixmatch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sukalov/romagic/internal/lyrics/sources/musixmatch"
)

func newClient(t *testing.T, handler http.HandlerFunc) *musixmatch.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := musixmatch.New("key", srv.URL, musixmatch.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestClientLyrics(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matcher.lyrics.get" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("track_isrc") != "JPU901800001" || r.URL.Query().Get("apikey") != "key" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"message":{"header":{"status_code":200},"body":{"lyrics":{"lyrics_id":7,"lyrics_body":"夢ならば","lyrics_language":"ja"}}}}`))
	})

	got, err := client.Lyrics(context.Background(), "JPU901800001")
	if err != nil {
		t.Fatalf("Lyrics: %v", err)
	}
	if got.Body != "夢ならば" || got.Language != "ja" || got.ID != 7 {
		t.Fatalf("unexpected lyrics %+v", got)
	}
}

func TestClientLyricsNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"header":{"status_code":404},"body":[]}}`))
	})

	_, err := client.Lyrics(context.Background(), "XX0000000000")
	if !errors.Is(err, musixmatch.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientEnvelopeError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"header":{"status_code":401},"body":""}}`))
	})

	_, err := client.Lyrics(context.Background(), "XX0000000000")
	if err == nil || errors.Is(err, musixmatch.ErrNotFound) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestClientTrack(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matcher.track.get" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"message":{"header":{"status_code":200},"body":{"track":{"track_id":1,"track_name":"Lemon","artist_name":"Kenshi Yonezu","has_lyrics":1}}}}`))
	})

	track, err := client.Track(context.Background(), "JPU901800001")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if track.Name != "Lemon" || track.ArtistName != "Kenshi Yonezu" {
		t.Fatalf("unexpected track %+v", track)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := musixmatch.New("", ""); err == nil {
		t.Fatal("expected error for missing key")
	}
}

type fakeGetter struct {
	lyrics musixmatch.Lyrics
	err    error
}

func (f fakeGetter) Lyrics(context.Context, string) (musixmatch.Lyrics, error) {
	return f.lyrics, f.err
}

func TestSourceFetch(t *testing.T) {
	res := musixmatch.NewSource(fakeGetter{lyrics: musixmatch.Lyrics{Body: "こんにちは", Language: "ja"}}).
		Fetch(context.Background(), "JPU901800001")
	if !res.Found {
		t.Fatalf("expected lyrics, got %q", res.Reason)
	}
	if res.Lyrics.Text != "こんにちは" || res.Lyrics.Language != "ja" || res.Lyrics.Source != musixmatch.SourceName {
		t.Fatalf("unexpected lyrics %+v", res.Lyrics)
	}
}

func TestSourceFetchDefaultsLanguage(t *testing.T) {
	res := musixmatch.NewSource(fakeGetter{lyrics: musixmatch.Lyrics{Body: "Hello world"}}).
		Fetch(context.Background(), "USXX00000001")
	if !res.Found || res.Lyrics.Language != "en" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Lyrics.Text != "Hello world" {
		t.Fatalf("body not verbatim: %q", res.Lyrics.Text)
	}
}

func TestSourceFetchNotFound(t *testing.T) {
	tests := []struct {
		name   string
		getter fakeGetter
		isrc   string
	}{
		{name: "empty isrc", isrc: " "},
		{name: "not in catalog", getter: fakeGetter{err: musixmatch.ErrNotFound}, isrc: "X"},
		{name: "transport error", getter: fakeGetter{err: errors.New("dial tcp: refused")}, isrc: "X"},
		{name: "empty body", getter: fakeGetter{lyrics: musixmatch.Lyrics{Body: "  \n"}}, isrc: "X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := musixmatch.NewSource(tt.getter).Fetch(context.Background(), tt.isrc)
			if res.Found || res.Reason == "" {
				t.Fatalf("expected not found with reason, got %+v", res)
			}
		})
	}
}

func TestClientTranslation(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crowd.track.translations.get" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("selected_language") != "en" || q.Get("track_isrc") != "JPU901800001" || q.Get("apikey") != "key" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"message":{"header":{"status_code":200},"body":{"translations_list":[` +
			`{"translation":{"snippet":"夢ならば","description":"If only it were a dream","language":"en"}},` +
			`{"translation":{"snippet":"どれほど","description":"","language":"en"}}]}}}`))
	})

	lines, err := client.Translation(context.Background(), "JPU901800001", " EN ")
	if err != nil {
		t.Fatalf("Translation: %v", err)
	}
	if len(lines) != 1 || lines[0].Original != "夢ならば" || lines[0].Translated != "If only it were a dream" {
		t.Fatalf("unexpected lines %+v", lines)
	}
	if got := musixmatch.FormatTranslation(lines); got != "夢ならば\nIf only it were a dream" {
		t.Fatalf("FormatTranslation = %q", got)
	}
}

func TestClientTranslationMissing(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"header":{"status_code":200},"body":{"translations_list":[]}}}`))
	})

	if _, err := client.Translation(context.Background(), "JPU901800001", "en"); !errors.Is(err, musixmatch.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.Translation(context.Background(), "JPU901800001", ""); err == nil {
		t.Fatal("expected error for empty language")
	}
}
