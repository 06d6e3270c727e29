package genius

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	containerSelector = cascadia.MustCompile(`div[data-lyrics-container="true"]`)
	excludedSelector  = cascadia.MustCompile(`[data-exclude-from-selection="true"]`)
)

// ExtractLyrics pulls the lyric text out of a Genius song page. Every lyrics
// container contributes its lines in document order; annotation widgets
// marked as excluded from selection are dropped. Lines are trimmed and blank
// ones removed. The second return is false when the page has no containers
// or they hold no text.
func ExtractLyrics(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}

	containers := doc.FindMatcher(containerSelector)
	if containers.Length() == 0 {
		return "", false
	}
	containers.FindMatcher(excludedSelector).Remove()

	var b strings.Builder
	for _, node := range containers.Nodes {
		writeText(&b, node)
		b.WriteByte('\n')
	}

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// writeText renders the text of n, turning <br> and block boundaries into
// line breaks so inline markup such as annotation links stays on its line.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Br:
			b.WriteByte('\n')
			return
		case atom.Script, atom.Style:
			return
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Div, atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.Li, atom.Ul, atom.Ol:
		return true
	}
	return false
}
