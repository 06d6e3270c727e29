package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/sukalov/romagic/internal/lyrics"
	"github.com/sukalov/romagic/internal/lyrics/sources/musixmatch"
)

type lyricsOutput struct {
	*lyrics.Lyrics
	Translation []musixmatch.TranslatedLine `json:"translation,omitempty"`
}

func printLyrics(cmd *cobra.Command, ctx *commandContext, heading string, found *lyrics.Lyrics, translation []musixmatch.TranslatedLine) error {
	out := cmd.OutOrStdout()
	if ctx.json {
		return writeJSON(cmd, lyricsOutput{Lyrics: found, Translation: translation})
	}
	useTable := !ctx.plain && isTerminal(out)
	text := renderLyrics(heading, found, useTable)
	if len(translation) > 0 {
		text += fmt.Sprintf("\n\ntranslation (%s):\n\n%s", translation[0].Language, musixmatch.FormatTranslation(translation))
	}
	_, err := io.WriteString(out, text+"\n")
	return err
}

// renderLyrics prints the heading, then either a pairs table or the text.
func renderLyrics(heading string, found *lyrics.Lyrics, useTable bool) string {
	body := found.Text()
	if useTable && found.IsRomanized && len(found.Pairs) > 0 {
		rows := make([][]string, 0, len(found.Pairs))
		for i, pair := range found.Pairs {
			rows = append(rows, []string{strconv.Itoa(i + 1), pair.Original, pair.Romanized})
		}
		body = renderTable([]string{"#", "Original", "Romanized"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
	}

	footer := ""
	if found.Source != "" {
		footer = "\n\nsource: " + found.Source
		if found.URL != "" {
			footer += fmt.Sprintf(" (%s)", found.URL)
		}
	}
	return heading + "\n\n" + body + footer
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
