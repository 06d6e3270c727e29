// Package format restructures scraped lyrics text for readability.
package format

import "strings"

// Sections trims every line and puts a blank line in front of each section
// header such as "[Chorus]", except when the header is the first line.
//
// The transform is a single pass and is not idempotent: running it over its
// own output inserts another blank line before every header.
func Sections(lyrics string) string {
	lines := splitLines(lyrics)
	formatted := make([]string, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i > 0 && IsSectionHeader(line) {
			formatted = append(formatted, "")
		}
		formatted = append(formatted, line)
	}

	return strings.Join(formatted, "\n")
}

// IsSectionHeader reports whether a trimmed line is bracket-delimited.
func IsSectionHeader(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

// splitLines splits on \n, \r\n and \r. A trailing line break does not
// produce a trailing empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
