package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/romagic/internal/bot"
	"github.com/sukalov/romagic/internal/bot/common"
	"github.com/sukalov/romagic/internal/db"
	"github.com/sukalov/romagic/internal/logger"
	"github.com/sukalov/romagic/internal/lyrics"
	"github.com/sukalov/romagic/internal/lyrics/sources/musixmatch"
)

// NotFoundMessage is the reply when no source has the lyrics.
const NotFoundMessage = "Lyrics not found."

const requestTimeout = 30 * time.Second

// Finder looks lyrics up.
type Finder interface {
	ByTitle(ctx context.Context, title, artist string) (*lyrics.Lyrics, bool)
	ByISRC(ctx context.Context, isrc string) (*lyrics.Lyrics, bool)
}

// TrackLookup resolves an ISRC to track metadata and translations.
type TrackLookup interface {
	Track(ctx context.Context, isrc string) (musixmatch.Track, error)
	Translation(ctx context.Context, isrc, language string) ([]musixmatch.TranslatedLine, error)
}

// UserRegistry records bot users.
type UserRegistry interface {
	Register(ctx context.Context, chatID int64, username, firstName, lastName string) (bool, error)
	RecordLookup(ctx context.Context, chatID int64) error
	Get(ctx context.Context, chatID int64) (db.User, error)
}

type ClientHandlers struct {
	finder Finder
	tracks TrackLookup
	users  UserRegistry
}

// NewClientHandlers builds the user-facing handlers. tracks and users may be
// nil.
func NewClientHandlers(finder Finder, tracks TrackLookup, users UserRegistry) *ClientHandlers {
	return &ClientHandlers{finder: finder, tracks: tracks, users: users}
}

// ParseTitleQuery splits "<artist> - <title>". Text without a separator is
// taken as a bare title.
func ParseTitleQuery(text string) (title, artist string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", false
	}
	for _, sep := range []string{" - ", " \u2013 ", " \u2014 "} {
		if left, right, found := strings.Cut(text, sep); found {
			artist, title = strings.TrimSpace(left), strings.TrimSpace(right)
			if title == "" {
				return artist, "", true
			}
			return title, artist, true
		}
	}
	return text, "", true
}

// FormatLyrics renders a lyrics reply under a heading line.
func FormatLyrics(heading string, found *lyrics.Lyrics) string {
	var b strings.Builder
	if heading != "" {
		b.WriteString(heading)
		b.WriteString("\n\n")
	}
	b.WriteString(found.Text())
	if found.URL != "" {
		b.WriteString("\n\n")
		b.WriteString(found.URL)
	}
	return b.String()
}

// LyricsReply answers a title query.
func (h *ClientHandlers) LyricsReply(ctx context.Context, query string) (string, bool) {
	title, artist, ok := ParseTitleQuery(query)
	if !ok {
		return common.Usage, false
	}

	found, ok := h.finder.ByTitle(ctx, title, artist)
	if !ok {
		return NotFoundMessage, false
	}

	heading := title
	if artist != "" {
		heading = artist + " - " + title
	}
	return FormatLyrics(heading, found), true
}

// ISRCReply answers "<isrc> [<language>]". With a language the Musixmatch
// translation follows the lyrics.
func (h *ClientHandlers) ISRCReply(ctx context.Context, query string) (string, bool) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return common.Usage, false
	}
	isrc := strings.ToUpper(fields[0])

	found, ok := h.finder.ByISRC(ctx, isrc)
	if !ok {
		return NotFoundMessage, false
	}

	heading := "ISRC " + isrc
	if h.tracks != nil {
		track, err := h.tracks.Track(ctx, isrc)
		if err == nil && track.Name != "" {
			heading = track.Name
			if track.ArtistName != "" {
				heading = track.ArtistName + " - " + track.Name
			}
		}
	}
	text := FormatLyrics(heading, found)

	if len(fields) > 1 {
		text += "\n\n" + h.translation(ctx, isrc, strings.ToLower(fields[1]))
	}
	return text, true
}

func (h *ClientHandlers) translation(ctx context.Context, isrc, language string) string {
	if h.tracks == nil {
		return "translations are not available"
	}
	lines, err := h.tracks.Translation(ctx, isrc, language)
	if err != nil {
		if !errors.Is(err, musixmatch.ErrNotFound) {
			logger.Error(fmt.Sprintf("error fetching %s translation for %s: %v", language, isrc, err))
		}
		return fmt.Sprintf("no %s translation available", language)
	}
	return fmt.Sprintf("translation (%s):\n\n%s", language, musixmatch.FormatTranslation(lines))
}

// ProfileReply describes the bot usage of chatID.
func (h *ClientHandlers) ProfileReply(ctx context.Context, chatID int64) string {
	if h.users == nil {
		return "user profiles are not available"
	}
	user, err := h.users.Get(ctx, chatID)
	if errors.Is(err, db.ErrNotFound) {
		return "you are not registered yet, send /start"
	}
	if err != nil {
		logger.Error(fmt.Sprintf("error loading user %d: %v", chatID, err))
		return "failed to load your profile"
	}
	return fmt.Sprintf("lyrics found for you: %d\nwith us since %s", user.Lookups, user.AddedAt.UTC().Format("2006-01-02"))
}

func (h *ClientHandlers) meHandler(b *bot.Bot, update tgbotapi.Update) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return b.SendMessage(update.Message.Chat.ID, h.ProfileReply(ctx, update.Message.Chat.ID))
}

func (h *ClientHandlers) startHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message

	if h.users != nil {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := h.users.Register(ctx, message.Chat.ID, message.From.UserName, message.From.FirstName, message.From.LastName); err != nil {
			logger.Error(fmt.Sprintf("error registering user: %v", err))
		}
	}

	return b.SendMessage(message.Chat.ID, common.Usage)
}

func (h *ClientHandlers) lyricsHandler(b *bot.Bot, update tgbotapi.Update) error {
	return h.answer(b, update.Message, h.LyricsReply, update.Message.CommandArguments())
}

func (h *ClientHandlers) isrcHandler(b *bot.Bot, update tgbotapi.Update) error {
	return h.answer(b, update.Message, h.ISRCReply, update.Message.CommandArguments())
}

func (h *ClientHandlers) textHandler(b *bot.Bot, update tgbotapi.Update) error {
	if update.Message == nil || strings.TrimSpace(update.Message.Text) == "" {
		return nil
	}
	return h.answer(b, update.Message, h.LyricsReply, update.Message.Text)
}

func (h *ClientHandlers) answer(
	b *bot.Bot,
	message *tgbotapi.Message,
	reply func(ctx context.Context, query string) (string, bool),
	query string,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	text, found := reply(ctx, query)
	if found && h.users != nil {
		if err := h.users.RecordLookup(ctx, message.Chat.ID); err != nil {
			logger.Error(fmt.Sprintf("error recording lookup: %v", err))
		}
	}
	return b.SendLong(message.Chat.ID, text)
}

// Commands adds the user-facing commands to handlers.
func (h *ClientHandlers) Commands(handlers map[string]bot.Handler) map[string]bot.Handler {
	handlers["start"] = h.startHandler
	handlers["lyrics"] = h.lyricsHandler
	handlers["isrc"] = h.isrcHandler
	handlers["me"] = h.meHandler
	return handlers
}

// TextHandler treats a plain message as a title query.
func (h *ClientHandlers) TextHandler() bot.Handler {
	return h.textHandler
}
