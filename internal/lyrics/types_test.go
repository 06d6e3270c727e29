package lyrics_test

import (
	"testing"

	"github.com/sukalov/romagic/internal/lyrics"
)

func TestResultText(t *testing.T) {
	romanized := "konnichiwa\n\n[Chorus]\nsayounara"
	r := lyrics.Result{
		IsRomanized: true,
		Original:    "こんにちは\n\n[Chorus]\nさようなら",
		Romanized:   &romanized,
		Pairs: []lyrics.LinePair{
			{Original: "こんにちは", Romanized: "konnichiwa"},
			{Original: "[Chorus]", Romanized: "[Chorus]"},
			{Original: "さようなら", Romanized: "sayounara"},
		},
	}
	want := "こんにちは\nkonnichiwa\n\n[Chorus]\n\nさようなら\nsayounara"
	if got := r.Text(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	plain := lyrics.Result{Original: "Hello world"}
	if got := plain.Text(); got != "Hello world" {
		t.Fatalf("got %q", got)
	}
}
