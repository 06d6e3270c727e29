// Package japanese romanizes Japanese lyrics with Hepburn spelling and
// word-level spacing.
//
// Each line is split into runs of Japanese script and everything else. Latin
// text, digits and ASCII punctuation are copied verbatim; Japanese runs are
// segmented into morphemes and every morpheme is spelled from its dictionary
// reading, so kanji compounds come out as separate readable words.
package japanese

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Romanizer is the Japanese transliteration strategy.
type Romanizer struct {
	segmenter Segmenter
}

// New returns a Romanizer backed by segmenter.
func New(segmenter Segmenter) *Romanizer {
	return &Romanizer{segmenter: segmenter}
}

// Romanize converts text line by line. The number of lines never changes.
func (r *Romanizer) Romanize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = r.romanizeLine(line)
	}
	return strings.Join(lines, "\n")
}

// voicingMarks turns spacing dakuten/handakuten into their combining forms so
// NFC can merge them into the preceding kana.
var voicingMarks = strings.NewReplacer("\u309b", "\u3099", "\u309c", "\u309a")

type run struct {
	text   string
	native bool
}

func (r *Romanizer) romanizeLine(line string) string {
	// Fold fullwidth ASCII to narrow and halfwidth kana to wide, then compose
	// the separated voicing marks halfwidth kana leave behind.
	line = norm.NFC.String(voicingMarks.Replace(width.Fold.String(line)))

	var b strings.Builder
	for _, rn := range splitRuns(line) {
		piece := rn.text
		if rn.native {
			piece = r.romanizeRun(rn.text, endsDigit(b.String()))
		}
		if piece == "" {
			continue
		}
		if endsAlnum(b.String()) && startsAlnum(piece) {
			b.WriteByte(' ')
		}
		b.WriteString(piece)
	}
	return b.String()
}

// romanizeRun spells one run of Japanese script. afterDigit reports that the
// run directly follows a numeral.
func (r *Romanizer) romanizeRun(text string, afterDigit bool) string {
	var b strings.Builder
	attach := true
	// pending is a trailing っ of the previous morpheme, as in 待っ|て.
	pending := false

	flush := func() {
		if pending {
			b.WriteByte('\'')
			pending = false
		}
	}

	for i, m := range r.segmenter.Segment(text) {
		if m.Surface == "・" {
			flush()
			attach = false
			continue
		}
		piece, trailing := spell(m, i == 0 && afterDigit)
		if strings.TrimSpace(piece) == "" {
			continue
		}
		switch {
		case pending && doubled(piece) != "'":
			b.WriteString(doubled(piece))
			b.WriteString(piece)
			attach = false
		case isOpening(m.Surface):
			flush()
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(piece)
			attach = true
		case !containsAlnum(piece):
			flush()
			b.WriteString(piece)
			attach = false
		default:
			flush()
			if !attach {
				b.WriteByte(' ')
			}
			b.WriteString(piece)
			attach = false
		}
		pending = trailing
	}
	flush()
	return b.String()
}

// counters are readings of counter suffixes written right after a numeral,
// where the free-standing noun reading would be wrong (年 is nen, not toshi).
var counters = map[string]string{
	"年": "nen", "月": "gatsu", "日": "nichi", "時": "ji", "秒": "byou",
	"歳": "sai", "才": "sai", "回": "kai", "度": "do", "枚": "mai",
	"番": "ban", "円": "en", "個": "ko", "階": "kai", "週": "shuu",
	"曲": "kyoku", "位": "i",
}

// spell returns the Hepburn spelling of one morpheme and whether its
// reading ends in a っ that belongs to the next morpheme.
func spell(m Morpheme, afterDigit bool) (string, bool) {
	if afterDigit {
		if reading, ok := counters[m.Surface]; ok {
			return reading, false
		}
	}
	if m.POS == "助詞" {
		switch m.Surface {
		case "は":
			return "wa", false
		case "へ":
			return "e", false
		case "を":
			return "o", false
		}
	}
	if m.Reading == "" {
		return spellKana(m.Surface)
	}
	return spellKana(particleSounds(m.Reading, m.Pronunciation))
}

// particleSounds takes the pronounced ワ/エ/オ where the reading spells ハ/ヘ/ヲ,
// as in こんにちは. The reading is kept everywhere else, so long vowels stay
// spelled out instead of collapsing to ー.
func particleSounds(reading, pronunciation string) string {
	rr, pr := []rune(reading), []rune(pronunciation)
	if len(rr) != len(pr) {
		return reading
	}
	for i := range rr {
		switch {
		case rr[i] == 'ハ' && pr[i] == 'ワ', rr[i] == 'ヘ' && pr[i] == 'エ', rr[i] == 'ヲ' && pr[i] == 'オ':
			rr[i] = pr[i]
		}
	}
	return string(rr)
}

func splitRuns(line string) []run {
	var runs []run
	var current strings.Builder
	native := false

	for _, r := range line {
		isNative := isJapanese(r)
		if current.Len() > 0 && isNative != native {
			runs = append(runs, run{text: current.String(), native: native})
			current.Reset()
		}
		native = isNative
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		runs = append(runs, run{text: current.String(), native: native})
	}
	return runs
}

// isJapanese reports whether r belongs to a script run handed to the
// segmenter: kana, kanji and CJK symbols such as 、。「」々.
func isJapanese(r rune) bool {
	switch {
	case isKana(r), unicode.Is(unicode.Han, r):
		return true
	case r >= 0x3001 && r <= 0x303F:
		return true
	case r == '・':
		return true
	}
	return false
}

func isOpening(surface string) bool {
	switch surface {
	case "「", "『", "【", "〈", "《", "〔":
		return true
	}
	return false
}

func containsAlnum(s string) bool {
	return strings.IndexFunc(s, isAlnum) >= 0
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func endsAlnum(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return isAlnum(r[len(r)-1])
}

func endsDigit(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return unicode.IsDigit(r[len(r)-1])
}

func startsAlnum(s string) bool {
	for _, r := range s {
		return isAlnum(r)
	}
	return false
}
