package lyrics

import (
	"strings"

	"github.com/sukalov/romagic/internal/lyrics/lang"
)

// Romanize builds the romanization result for raw lyrics.
//
// Pre-romanized lyrics and lyrics whose language resolves to EN come back
// unchanged with IsRomanized unset. Otherwise the full text is transliterated
// once and every non-blank line once more to build the line pairs. Section
// headers like "[Chorus]" are treated as ordinary lines.
func Romanize(t Transliterator, raw Raw) Result {
	if raw.PreRomanized {
		return Result{Original: raw.Text}
	}

	tag := lang.Resolve(raw.Language)
	if !tag.NeedsRomanization() {
		return Result{Original: raw.Text}
	}

	romanized := t.Transliterate(raw.Text, tag)
	lines := nonBlankLines(raw.Text)
	pairs := make([]LinePair, 0, len(lines))
	for _, line := range lines {
		pairs = append(pairs, LinePair{
			Original:  line,
			Romanized: t.Transliterate(line, tag),
		})
	}

	return Result{
		IsRomanized: true,
		Original:    raw.Text,
		Romanized:   &romanized,
		Pairs:       pairs,
	}
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
