// Package korean transliterates Hangul with the Revised Romanization letters
// in their transliteration form: each precomposed syllable block maps to its
// initial, medial and final letters independently of pronunciation changes,
// and a hyphen marks every boundary that could otherwise be read two ways.
package korean

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	medialCount   = 21
	finalCount    = 28
	blockPerFirst = medialCount * finalCount
)

var initials = [...]string{
	"g", "kk", "n", "d", "tt", "l", "m", "b", "pp", "s", "ss", "", "j", "jj", "ch", "k", "t", "p", "h",
}

var medials = [...]string{
	"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o", "wa", "wae", "oe", "yo", "u", "wo", "we", "wi", "yu", "eu", "ui", "i",
}

var finals = [...]string{
	"", "g", "kk", "gs", "n", "nj", "nh", "d", "l", "lg", "lm", "lb", "ls", "lt", "lp", "lh", "m", "b", "bs", "s", "ss", "ng", "j", "ch", "k", "t", "p", "h",
}

// ambiguous holds final+initial letter sequences that can be split back into
// a (final, initial) pair in more than one way, e.g. "ng" is either ㅇ+∅ or
// ㄴ+ㄱ. A hyphen is written after a closed syllable whose final and the next
// initial form such a sequence.
var ambiguous = buildAmbiguous()

// ambiguousVowels holds medial+medial sequences met between an open syllable
// and a ㅇ-initial one that read two ways: "eu" is 세|운 or 슨, "aeu" is 해|운
// or 하|은.
var ambiguousVowels = buildAmbiguousVowels()

func buildAmbiguousVowels() map[string]bool {
	isMedial := make(map[string]bool, len(medials))
	for _, m := range medials {
		isMedial[m] = true
	}

	result := make(map[string]bool)
	for _, first := range medials {
		for _, second := range medials {
			combined := first + second
			readings := 0
			if isMedial[combined] {
				readings++
			}
			for cut := 1; cut < len(combined); cut++ {
				if isMedial[combined[:cut]] && isMedial[combined[cut:]] {
					readings++
				}
			}
			if readings > 1 {
				result[combined] = true
			}
		}
	}
	return result
}

func buildAmbiguous() map[string]bool {
	isFinal := make(map[string]bool, len(finals))
	for _, f := range finals {
		isFinal[f] = true
	}
	isInitial := make(map[string]bool, len(initials))
	for _, i := range initials {
		isInitial[i] = true
	}

	result := make(map[string]bool)
	for _, f := range finals[1:] {
		for _, i := range initials {
			combined := f + i
			splits := 0
			for cut := 0; cut <= len(combined); cut++ {
				if isFinal[combined[:cut]] && isInitial[combined[cut:]] {
					splits++
				}
			}
			if splits > 1 {
				result[combined] = true
			}
		}
	}
	return result
}

type syllable struct {
	initial, medial, final int
}

func decompose(r rune) (syllable, bool) {
	if r < syllableBase || r > syllableLast {
		return syllable{}, false
	}
	offset := int(r - syllableBase)
	return syllable{
		initial: offset / blockPerFirst,
		medial:  (offset % blockPerFirst) / finalCount,
		final:   offset % finalCount,
	}, true
}

// Romanizer is the Korean transliteration strategy.
type Romanizer struct{}

// New returns a Korean romanizer. It holds no state and is safe for
// concurrent use.
func New() *Romanizer {
	return &Romanizer{}
}

// Romanize transliterates every Hangul syllable in text. Conjoining jamo are
// composed first; everything that is not a syllable block passes through.
func (Romanizer) Romanize(text string) string {
	runes := []rune(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(runes) * 3)
	for i, r := range runes {
		s, ok := decompose(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		final := finals[s.final]
		b.WriteString(initials[s.initial])
		b.WriteString(medials[s.medial])
		b.WriteString(final)

		if i+1 < len(runes) {
			if next, ok := decompose(runes[i+1]); ok && needsHyphen(s, next) {
				b.WriteByte('-')
			}
		}
	}
	return b.String()
}

func needsHyphen(current, next syllable) bool {
	if final := finals[current.final]; final != "" {
		return ambiguous[final+initials[next.initial]]
	}
	return initials[next.initial] == "" && ambiguousVowels[medials[current.medial]+medials[next.medial]]
}
