// Package lang maps provider language identifiers onto the closed set of
// languages the romanizer knows how to handle.
package lang

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Tag is a supported lyrics language.
type Tag string

const (
	EN Tag = "en"
	JA Tag = "ja"
	KO Tag = "ko"
)

// Tags lists every supported tag. EN is the fallback and needs no romanization.
var Tags = []Tag{EN, JA, KO}

// names holds the spelled-out forms some providers report instead of codes.
var names = map[string]Tag{
	"english":  EN,
	"japanese": JA,
	"korean":   KO,
}

// String returns the ISO 639-1 code of the tag.
func (t Tag) String() string {
	return string(t)
}

// NeedsRomanization reports whether lyrics in this language are written in a
// non-Latin script the romanizer converts.
func (t Tag) NeedsRomanization() bool {
	return t != EN && t.valid()
}

func (t Tag) valid() bool {
	for _, known := range Tags {
		if t == known {
			return true
		}
	}
	return false
}

// Resolve maps an identifier (ISO 639-1/639-2 code, BCP 47 tag or English
// language name) to a supported Tag. Anything unrecognized resolves to EN.
func Resolve(identifier string) Tag {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return EN
	}
	if tag, ok := names[id]; ok {
		return tag
	}
	if tag := Tag(id); tag.valid() {
		return tag
	}

	parsed, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return EN
	}
	base, confidence := parsed.Base()
	if confidence == language.No {
		return EN
	}
	if tag := Tag(base.String()); tag.valid() {
		return tag
	}
	return EN
}

// Detect guesses a language identifier from the scripts used in text. Kana
// marks Japanese, Hangul marks Korean, Han ideographs alone are reported as
// Chinese, and everything else as English.
func Detect(text string) string {
	var han, kana, hangul bool
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			kana = true
		case unicode.Is(unicode.Hangul, r):
			hangul = true
		case unicode.Is(unicode.Han, r):
			han = true
		}
	}
	switch {
	case kana:
		return JA.String()
	case hangul:
		return KO.String()
	case han:
		return "zh"
	}
	return EN.String()
}
