package common

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/romagic/internal/bot"
)

// Usage is the command overview shown by /start and /help.
const Usage = "send me a song and i will find its lyrics and romanize them.\n\n" +
	"/lyrics <artist> - <title>: search by artist and title\n" +
	"/isrc <code> [<language>]: look up a recording by ISRC, optionally with a translation\n" +
	"/me: your lookup count\n\n" +
	"you can also just write \"<artist> - <title>\"."

// GetCommandHandlers returns the handlers every bot shares.
func GetCommandHandlers() map[string]bot.Handler {
	return map[string]bot.Handler{
		"help": helpHandler,
	}
}

// GetCallbackHandlers returns common callback handlers
func GetCallbackHandlers() map[string]bot.Handler {
	return map[string]bot.Handler{}
}

func helpHandler(b *bot.Bot, update tgbotapi.Update) error {
	return b.SendMessage(update.Message.Chat.ID, Usage)
}
