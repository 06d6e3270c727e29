package lyrics_test

import (
	"testing"

	"github.com/sukalov/romagic/internal/lyrics"
	"github.com/sukalov/romagic/internal/lyrics/format"
	"github.com/sukalov/romagic/internal/lyrics/lang"
)

type stubTransliterator struct {
	table map[string]string
	calls int
	tags  []lang.Tag
}

func (s *stubTransliterator) Transliterate(text string, tag lang.Tag) string {
	s.calls++
	s.tags = append(s.tags, tag)
	if out, ok := s.table[text]; ok {
		return out
	}
	return text
}

func newStub() *stubTransliterator {
	return &stubTransliterator{table: map[string]string{
		"こんにちは": "konnichiwa",
		"さようなら": "sayounara",
		"こんにちは\n\n[Chorus]\nさようなら": "konnichiwa\n\n[Chorus]\nsayounara",
	}}
}

func TestRomanizeJapaneseScenario(t *testing.T) {
	stub := newStub()
	text := format.Sections("こんにちは\n[Chorus]\nさようなら")
	if text != "こんにちは\n\n[Chorus]\nさようなら" {
		t.Fatalf("unexpected formatted text %q", text)
	}

	got := lyrics.Romanize(stub, lyrics.Raw{Text: text, Language: "ja"})
	if !got.IsRomanized {
		t.Fatal("expected romanized result")
	}
	if got.Original != text {
		t.Fatalf("original changed: %q", got.Original)
	}
	if got.Romanized == nil || *got.Romanized != "konnichiwa\n\n[Chorus]\nsayounara" {
		t.Fatalf("unexpected romanized text %v", got.Romanized)
	}

	want := []lyrics.LinePair{
		{Original: "こんにちは", Romanized: "konnichiwa"},
		{Original: "[Chorus]", Romanized: "[Chorus]"},
		{Original: "さようなら", Romanized: "sayounara"},
	}
	if len(got.Pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d: %+v", len(want), len(got.Pairs), got.Pairs)
	}
	for i := range want {
		if got.Pairs[i] != want[i] {
			t.Fatalf("pair %d = %+v, want %+v", i, got.Pairs[i], want[i])
		}
	}
	for _, tag := range stub.tags {
		if tag != lang.JA {
			t.Fatalf("transliterated with %q", tag)
		}
	}
}

func TestRomanizeEnglishPassThrough(t *testing.T) {
	stub := newStub()
	got := lyrics.Romanize(stub, lyrics.Raw{Text: "Hello world", Language: "en"})
	if got.IsRomanized || got.Original != "Hello world" || got.Romanized != nil || got.Pairs != nil {
		t.Fatalf("unexpected result %+v", got)
	}
	if stub.calls != 0 {
		t.Fatalf("engine called %d times for english", stub.calls)
	}
}

func TestRomanizeUnknownLanguageIsEnglish(t *testing.T) {
	stub := newStub()
	got := lyrics.Romanize(stub, lyrics.Raw{Text: "Bonjour", Language: "fr"})
	if got.IsRomanized || stub.calls != 0 {
		t.Fatalf("unexpected result %+v after %d calls", got, stub.calls)
	}
}

func TestRomanizePreRomanized(t *testing.T) {
	stub := newStub()
	got := lyrics.Romanize(stub, lyrics.Raw{Text: "yume naraba", Language: "ja", PreRomanized: true})
	if got.IsRomanized || got.Original != "yume naraba" || stub.calls != 0 {
		t.Fatalf("unexpected result %+v after %d calls", got, stub.calls)
	}
}

func TestRomanizePairsSkipBlankLines(t *testing.T) {
	stub := newStub()
	got := lyrics.Romanize(stub, lyrics.Raw{Text: "こんにちは\r\n \n\nさようなら\n", Language: "japanese"})
	if len(got.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", got.Pairs)
	}
	if got.Pairs[0].Original != "こんにちは" || got.Pairs[1].Romanized != "sayounara" {
		t.Fatalf("unexpected pairs %+v", got.Pairs)
	}
	// one call for the full text, one per non-blank line
	if stub.calls != 3 {
		t.Fatalf("expected 3 engine calls, got %d", stub.calls)
	}
}

func TestRomanizeBlankText(t *testing.T) {
	got := lyrics.Romanize(newStub(), lyrics.Raw{Text: " \n ", Language: "ko"})
	if !got.IsRomanized {
		t.Fatal("expected romanized flag for korean")
	}
	if got.Pairs == nil || len(got.Pairs) != 0 {
		t.Fatalf("expected empty non-nil pairs, got %#v", got.Pairs)
	}
	if got.Romanized == nil || *got.Romanized != " \n " {
		t.Fatalf("unexpected romanized text %v", got.Romanized)
	}
}
