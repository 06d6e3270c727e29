package japanese

import (
	"strings"
	"unicode"
)

const sokuon = 'っ'

var monographs = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "i", 'ゑ': "e", 'を': "o", 'ん': "n",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ゔ': "vu",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo", 'ゎ': "wa", 'ゕ': "ka", 'ゖ': "ke",
}

var digraphs = map[string]string{
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho", "しぇ": "she",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho", "ちぇ": "che",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo", "じぇ": "je",
	"ぢゃ": "ja", "ぢゅ": "ju", "ぢょ": "jo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",
	"てぃ": "ti", "でぃ": "di", "とぅ": "tu", "どぅ": "du",
	"てゅ": "tyu", "でゅ": "dyu",
	"ふぁ": "fa", "ふぃ": "fi", "ふぇ": "fe", "ふぉ": "fo", "ふゅ": "fyu",
	"うぃ": "wi", "うぇ": "we", "うぉ": "wo",
	"ゔぁ": "va", "ゔぃ": "vi", "ゔぇ": "ve", "ゔぉ": "vo",
	"つぁ": "tsa", "つぃ": "tsi", "つぇ": "tse", "つぉ": "tso",
	"いぇ": "ye",
}

var punctuation = map[rune]string{
	'、': ",", '。': ".", '「': "\"", '」': "\"", '『': "\"", '』': "\"",
	'〜': "~", '【': "[", '】': "]", '〈': "<", '〉': ">", '《': "<", '》': ">",
	'〔': "(", '〕': ")",
}

// toHiragana folds katakana onto the matching hiragana so a single table
// covers both scripts.
func toHiragana(r rune) rune {
	if r >= 'ァ' && r <= 'ヶ' {
		return r - 0x60
	}
	return r
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}

// Kana converts hiragana and katakana in s to Hepburn romaji. Characters that
// are not kana pass through unchanged. A っ that doubles no consonant, as
// line-final in あっ, is written as an apostrophe.
func Kana(s string) string {
	out, pending := spellKana(s)
	if pending {
		out += "'"
	}
	return out
}

// spellKana is Kana without the final apostrophe: pending reports a trailing
// っ that the caller may still apply to the next word.
func spellKana(s string) (string, bool) {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = toHiragana(r)
	}

	var b strings.Builder
	b.Grow(len(s))
	geminate := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == sokuon {
			if geminate {
				b.WriteByte('\'')
			}
			geminate = true
			continue
		}

		if r == 'ー' {
			if out := b.String(); out != "" && isVowel(out[len(out)-1]) {
				b.WriteByte(out[len(out)-1])
			} else {
				b.WriteByte('-')
			}
			continue
		}

		syllable, width := "", 1
		if i+1 < len(runes) {
			if d, ok := digraphs[string(runes[i:i+2])]; ok {
				syllable, width = d, 2
			}
		}
		if syllable == "" {
			if m, ok := monographs[r]; ok {
				syllable = m
			}
		}

		if geminate {
			geminate = false
			b.WriteString(doubled(syllable))
		}

		if syllable == "" {
			if p, ok := punctuation[r]; ok {
				b.WriteString(p)
			} else {
				b.WriteRune(r)
			}
			continue
		}
		b.WriteString(syllable)
		i += width - 1
	}
	return b.String(), geminate
}

// doubled returns what っ contributes in front of romaji: the doubled
// consonant, "t" before "ch", or an apostrophe when there is nothing to
// double.
func doubled(romaji string) string {
	switch {
	case strings.HasPrefix(romaji, "ch"):
		return "t"
	case romaji == "" || romaji == "n" || !isLatinConsonant(romaji[0]):
		return "'"
	}
	return romaji[:1]
}

func isLatinConsonant(b byte) bool {
	return b >= 'a' && b <= 'z' && !isVowel(b)
}

// isKana reports whether r is hiragana, katakana or the prolonged sound mark.
func isKana(r rune) bool {
	return unicode.In(r, unicode.Hiragana, unicode.Katakana) || r == 'ー'
}
