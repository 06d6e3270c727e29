package japanese

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Morpheme is one segmented word with its dictionary readings in katakana.
// Reading and Pronunciation are empty when the dictionary has no entry.
type Morpheme struct {
	Surface       string
	Reading       string
	Pronunciation string
	POS           string
}

// Segmenter splits Japanese text into morphemes.
type Segmenter interface {
	Segment(text string) []Morpheme
}

// KagomeSegmenter segments text with the kagome morphological analyzer and
// the IPA dictionary.
type KagomeSegmenter struct {
	tokenizer *tokenizer.Tokenizer
}

var _ Segmenter = (*KagomeSegmenter)(nil)

// NewKagomeSegmenter loads the IPA dictionary. Loading is expensive; build
// one segmenter per process and share it, it is safe for concurrent use.
func NewKagomeSegmenter() (*KagomeSegmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("create kagome tokenizer: %w", err)
	}
	return &KagomeSegmenter{tokenizer: t}, nil
}

// Segment tokenizes text in normal mode.
func (s *KagomeSegmenter) Segment(text string) []Morpheme {
	tokens := s.tokenizer.Tokenize(text)
	morphemes := make([]Morpheme, 0, len(tokens))
	for _, tok := range tokens {
		m := Morpheme{Surface: tok.Surface}
		if reading, ok := tok.Reading(); ok && reading != "*" {
			m.Reading = reading
		}
		if pron, ok := tok.Pronunciation(); ok && pron != "*" {
			m.Pronunciation = pron
		}
		if pos := tok.POS(); len(pos) > 0 {
			m.POS = pos[0]
		}
		morphemes = append(morphemes, m)
	}
	return morphemes
}
