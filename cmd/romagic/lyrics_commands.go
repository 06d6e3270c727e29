package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sukalov/romagic/internal/lyrics/sources/musixmatch"
)

const notFoundMessage = "Lyrics not found."

var errNotFound = errors.New("lyrics not found")

// notFound tells the user and returns the error that sets the exit status.
func notFound(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.ErrOrStderr(), notFoundMessage)
	return errNotFound
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var artist string

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Find lyrics by song title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			found, ok := a.Service.ByTitle(cmd.Context(), title, artist)
			if !ok {
				return notFound(cmd)
			}

			heading := title
			if artist != "" {
				heading = artist + " - " + title
			}
			return printLyrics(cmd, ctx, heading, found, nil)
		},
	}

	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Artist name")
	return cmd
}

func newISRCCommand(ctx *commandContext) *cobra.Command {
	var translate string

	cmd := &cobra.Command{
		Use:   "isrc <code>",
		Short: "Find lyrics by ISRC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			isrc := strings.ToUpper(strings.TrimSpace(args[0]))
			found, ok := a.Service.ByISRC(cmd.Context(), isrc)
			if !ok {
				return notFound(cmd)
			}

			heading := "ISRC " + isrc
			if a.Musixmatch != nil {
				if track, err := a.Musixmatch.Track(cmd.Context(), isrc); err == nil && track.Name != "" {
					heading = track.Name
					if track.ArtistName != "" {
						heading = track.ArtistName + " - " + track.Name
					}
				}
			}
			if found.Track.Title == "" {
				found.Track.Title = heading
			}

			var translation []musixmatch.TranslatedLine
			if translate != "" {
				if a.Musixmatch == nil {
					return fmt.Errorf("translations need musixmatch (set MUSIXMATCH_API_KEY)")
				}
				translation, err = a.Musixmatch.Translation(cmd.Context(), isrc, translate)
				if err != nil && !errors.Is(err, musixmatch.ErrNotFound) {
					return err
				}
				if len(translation) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "no %s translation available\n", translate)
				}
			}
			return printLyrics(cmd, ctx, heading, found, translation)
		},
	}

	cmd.Flags().StringVarP(&translate, "translate", "t", "", "Append the Musixmatch translation into this language (e.g. en)")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lyrics cache counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if a.Cache == nil {
				return fmt.Errorf("cache is not configured (set REDIS_URL)")
			}
			stats, err := a.Cache.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, stats)
			}
			rows := [][]string{
				{"hit", fmt.Sprint(stats["hit"])},
				{"miss", fmt.Sprint(stats["miss"])},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Counter", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
