package admin

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/romagic/internal/bot"
	"github.com/sukalov/romagic/internal/bot/client"
	"github.com/sukalov/romagic/internal/db"
	"github.com/sukalov/romagic/internal/lyrics/lang"
)

// CatalogWriter stores lyrics in the local catalog.
type CatalogWriter interface {
	Save(ctx context.Context, entry db.Entry) error
}

// StatsSource reports lyrics cache counters.
type StatsSource interface {
	Stats(ctx context.Context) (map[string]int, error)
}

type AdminHandlers struct {
	admins  map[string]bool
	catalog CatalogWriter
	stats   StatsSource

	mu      sync.Mutex
	pending map[int64]db.Entry
}

// NewAdminHandlers builds admin handlers. catalog and stats may be nil.
func NewAdminHandlers(adminUsernames []string, catalog CatalogWriter, stats StatsSource) *AdminHandlers {
	admins := make(map[string]bool)
	for _, username := range adminUsernames {
		if username = strings.TrimPrefix(strings.TrimSpace(username), "@"); username != "" {
			admins[username] = true
		}
	}

	return &AdminHandlers{
		admins:  admins,
		catalog: catalog,
		stats:   stats,
		pending: make(map[int64]db.Entry),
	}
}

// ParseAddLyrics reads "<ISRC> <language> [<artist> - <title>]".
func ParseAddLyrics(args string) (db.Entry, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return db.Entry{}, fmt.Errorf("usage: /addlyrics <isrc> <language> [<artist> - <title>]")
	}

	entry := db.Entry{
		ISRC:     strings.ToUpper(fields[0]),
		Language: sql.NullString{String: lang.Resolve(fields[1]).String(), Valid: true},
	}
	if rest := strings.Join(fields[2:], " "); rest != "" {
		title, artist, _ := client.ParseTitleQuery(rest)
		entry.Title = title
		entry.Artist = sql.NullString{String: artist, Valid: artist != ""}
	}
	return entry, nil
}

// IsAdmin reports whether username may use admin commands.
func (h *AdminHandlers) IsAdmin(username string) bool {
	return h.admins[username]
}

// Pending reports whether a lyrics body is awaited from chatID.
func (h *AdminHandlers) Pending(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.pending[chatID]
	return ok
}

// Begin records an entry that waits for its lyrics body.
func (h *AdminHandlers) Begin(chatID int64, entry db.Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[chatID] = entry
}

// Complete saves the pending entry of chatID with body.
func (h *AdminHandlers) Complete(ctx context.Context, chatID int64, body string) (db.Entry, error) {
	h.mu.Lock()
	entry, ok := h.pending[chatID]
	delete(h.pending, chatID)
	h.mu.Unlock()

	if !ok {
		return db.Entry{}, fmt.Errorf("nothing pending for chat %d", chatID)
	}
	entry.Body = strings.TrimSpace(body)
	if entry.Body == "" {
		return db.Entry{}, fmt.Errorf("lyrics body is empty")
	}
	if err := h.catalog.Save(ctx, entry); err != nil {
		return db.Entry{}, err
	}
	return entry, nil
}

// FormatStats renders cache counters sorted by name.
func FormatStats(stats map[string]int) string {
	if len(stats) == 0 {
		return "cache is empty"
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("cache:")
	for _, key := range keys {
		fmt.Fprintf(&b, "\n%s: %d", key, stats[key])
	}
	return b.String()
}

func (h *AdminHandlers) addLyricsHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message

	if !h.admins[message.From.UserName] {
		return b.SendMessage(message.Chat.ID, "you are not an admin")
	}
	if h.catalog == nil {
		return b.SendMessage(message.Chat.ID, "local catalog is not configured")
	}

	entry, err := ParseAddLyrics(message.CommandArguments())
	if err != nil {
		return b.SendMessage(message.Chat.ID, err.Error())
	}
	h.Begin(message.Chat.ID, entry)

	return b.SendMessageWithButtons(message.Chat.ID,
		fmt.Sprintf("now send the lyrics for %s (%s)", entry.ISRC, entry.Language.String),
		tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("cancel", "abort_add_lyrics"),
			),
		),
	)
}

func (h *AdminHandlers) abortHandler(b *bot.Bot, update tgbotapi.Update) error {
	query := update.CallbackQuery
	chatID := query.Message.Chat.ID

	h.mu.Lock()
	_, ok := h.pending[chatID]
	delete(h.pending, chatID)
	h.mu.Unlock()

	_ = b.AnswerCallback(query, "")
	if !ok {
		return b.SendMessage(chatID, "the button no longer works")
	}
	return b.SendMessage(chatID, "ok, cancelled")
}

func (h *AdminHandlers) statsHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message

	if !h.admins[message.From.UserName] {
		return b.SendMessage(message.Chat.ID, "you are not an admin")
	}
	if h.stats == nil {
		return b.SendMessage(message.Chat.ID, "cache is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stats, err := h.stats.Stats(ctx)
	if err != nil {
		return b.SendMessage(message.Chat.ID, fmt.Sprintf("failed to read stats: %v", err))
	}
	return b.SendMessage(message.Chat.ID, FormatStats(stats))
}

// Commands adds the admin commands to handlers.
func (h *AdminHandlers) Commands(handlers map[string]bot.Handler) map[string]bot.Handler {
	handlers["addlyrics"] = h.addLyricsHandler
	handlers["stats"] = h.statsHandler
	return handlers
}

// Callbacks adds the admin callback handlers to handlers.
func (h *AdminHandlers) Callbacks(handlers map[string]bot.Handler) map[string]bot.Handler {
	handlers["abort_add_lyrics"] = h.abortHandler
	return handlers
}

// Intercept consumes a message that completes a pending upload and passes
// every other message to next.
func (h *AdminHandlers) Intercept(next bot.Handler) bot.Handler {
	return func(b *bot.Bot, update tgbotapi.Update) error {
		if update.Message == nil || !h.Pending(update.Message.Chat.ID) {
			return next(b, update)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		entry, err := h.Complete(ctx, update.Message.Chat.ID, update.Message.Text)
		if err != nil {
			return b.SendMessage(update.Message.Chat.ID, fmt.Sprintf("not saved: %v", err))
		}
		return b.SendMessage(update.Message.Chat.ID, fmt.Sprintf("saved %s", db.FormatTrackName(entry)))
	}
}
