package japanese_test

import (
	"strings"
	"testing"

	"github.com/sukalov/romagic/internal/lyrics/romanizer/japanese"
)

// stubSegmenter returns canned morphemes per run and falls back to a single
// morpheme without a reading.
type stubSegmenter map[string][]japanese.Morpheme

func (s stubSegmenter) Segment(text string) []japanese.Morpheme {
	if m, ok := s[text]; ok {
		return m
	}
	return []japanese.Morpheme{{Surface: text}}
}

func TestRomanizeWithSegmenter(t *testing.T) {
	seg := stubSegmenter{
		"こんにちは": {
			{Surface: "こんにちは", Reading: "コンニチハ", Pronunciation: "コンニチワ", POS: "感動詞"},
		},
		"私は歌う": {
			{Surface: "私", Reading: "ワタシ", Pronunciation: "ワタシ", POS: "名詞"},
			{Surface: "は", Reading: "ハ", Pronunciation: "ワ", POS: "助詞"},
			{Surface: "歌う", Reading: "ウタウ", Pronunciation: "ウタウ", POS: "動詞"},
		},
		"君の名は。": {
			{Surface: "君", Reading: "キミ", Pronunciation: "キミ", POS: "名詞"},
			{Surface: "の", Reading: "ノ", Pronunciation: "ノ", POS: "助詞"},
			{Surface: "名", Reading: "ナ", Pronunciation: "ナ", POS: "名詞"},
			{Surface: "は", Reading: "ハ", Pronunciation: "ワ", POS: "助詞"},
			{Surface: "。", POS: "記号"},
		},
		"愛してる": {
			{Surface: "愛し", Reading: "アイシ", Pronunciation: "アイシ", POS: "動詞"},
			{Surface: "てる", Reading: "テル", Pronunciation: "テル", POS: "助動詞"},
		},
		"待って": {
			{Surface: "待っ", Reading: "マッ", Pronunciation: "マッ", POS: "動詞"},
			{Surface: "て", Reading: "テ", Pronunciation: "テ", POS: "助詞"},
		},
		"待っちゃう": {
			{Surface: "待っ", Reading: "マッ", Pronunciation: "マッ", POS: "動詞"},
			{Surface: "ちゃう", Reading: "チャウ", Pronunciation: "チャウ", POS: "動詞"},
		},
		"あっ、": {
			{Surface: "あっ", Reading: "アッ", Pronunciation: "アッ", POS: "感動詞"},
			{Surface: "、", POS: "記号"},
		},
		"年": {
			{Surface: "年", Reading: "トシ", Pronunciation: "トシ", POS: "名詞"},
		},
		"「夢」を見た": {
			{Surface: "「", POS: "記号"},
			{Surface: "夢", Reading: "ユメ", Pronunciation: "ユメ", POS: "名詞"},
			{Surface: "」", POS: "記号"},
			{Surface: "を", Reading: "ヲ", Pronunciation: "ヲ", POS: "助詞"},
			{Surface: "見", Reading: "ミ", Pronunciation: "ミ", POS: "動詞"},
			{Surface: "た", Reading: "タ", Pronunciation: "タ", POS: "助動詞"},
		},
	}
	r := japanese.New(seg)

	tests := []struct {
		input string
		want  string
	}{
		{"こんにちは", "konnichiwa"},
		{"私は歌う", "watashi wa utau"},
		{"君の名は。Your name", "kimi no na wa. Your name"},
		{"愛してるLove", "aishi teru Love"},
		{"「夢」を見た", "\"yume\" o mi ta"},
		{"待って", "matte"},
		{"待っちゃう", "matchau"},
		{"あっ、", "a',"},
		{"あっ", "a'"},
		{"2024年", "2024 nen"},
		{"２０２４年", "2024 nen"},
		{"年", "toshi"},
		{"[Chorus]", "[Chorus]"},
		{"[サビ]", "[sabi]"},
		{"ｶﾀｶﾅ", "katakana"},
		{"ｶﾞｯｺｳ", "gakkou"},
		{"ＡＢＣ", "ABC"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := r.Romanize(tt.input); got != tt.want {
			t.Errorf("Romanize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRomanizeKeepsLineCount(t *testing.T) {
	r := japanese.New(stubSegmenter{})
	input := "さようなら\n\n[Chorus]\nまた\n"
	got := r.Romanize(input)
	if strings.Count(got, "\n") != strings.Count(input, "\n") {
		t.Fatalf("line count changed: %q", got)
	}
	if got != "sayounara\n\n[Chorus]\nmata\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRomanizeWithKagome(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the IPA dictionary")
	}
	seg, err := japanese.NewKagomeSegmenter()
	if err != nil {
		t.Fatalf("NewKagomeSegmenter: %v", err)
	}
	r := japanese.New(seg)

	if got := r.Romanize("こんにちは"); got != "konnichiwa" {
		t.Errorf("こんにちは = %q", got)
	}
	if got := r.Romanize("さようなら"); got != "sayounara" {
		t.Errorf("さようなら = %q", got)
	}
	if got := r.Romanize("Hello こんにちは\n[Chorus]"); got != "Hello konnichiwa\n[Chorus]" {
		t.Errorf("mixed = %q", got)
	}

	geminates := map[string]string{
		"待って":   "matte",
		"笑った":   "waratta",
		"言って":   "itte",
		"2024年": "2024 nen",
	}
	for input, want := range geminates {
		if got := r.Romanize(input); got != want {
			t.Errorf("%s = %q, want %q", input, got, want)
		}
	}
}
