package bot

import (
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/romagic/internal/utils"
)

// MessageLimit is the longest text Telegram accepts in one message.
const MessageLimit = 4096

// Handler processes one update.
type Handler func(b *Bot, update tgbotapi.Update) error

// Bot represents a configurable Telegram bot
type Bot struct {
	Client     *tgbotapi.BotAPI
	updateChan tgbotapi.UpdatesChannel
	stopChan   chan struct{}
	name       string
	mu         sync.Mutex
}

// New creates a new bot instance
func New(name, token string) (*Bot, error) {
	botClient, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updateChan := botClient.GetUpdatesChan(updateConfig)

	return &Bot{
		Client:     botClient,
		updateChan: updateChan,
		stopChan:   make(chan struct{}),
		name:       name,
	}, nil
}

// Start begins processing updates with custom handlers. Callback handlers
// are keyed by the callback data prefix before the first ':'.
func (b *Bot) Start(
	commandHandlers map[string]Handler,
	messageHandlers []Handler,
	callbackHandlers map[string]Handler,
) {
	log.Printf("[%s] authorized on account %s", b.name, b.Client.Self.UserName)

	for {
		select {
		case update := <-b.updateChan:
			go b.processUpdate(update, commandHandlers, messageHandlers, callbackHandlers)
		case <-b.stopChan:
			return
		}
	}
}

// processUpdate handles incoming updates with custom handlers
func (b *Bot) processUpdate(
	update tgbotapi.Update,
	commandHandlers map[string]Handler,
	messageHandlers []Handler,
	callbackHandlers map[string]Handler,
) {
	if handler, ok := Route(update, commandHandlers, callbackHandlers); ok {
		if err := handler(b, update); err != nil {
			log.Printf("[%s] handler error: %v", b.name, err)
		}
		return
	}

	if update.Message == nil || update.Message.IsCommand() {
		return
	}

	for _, handler := range messageHandlers {
		if err := handler(b, update); err != nil {
			log.Printf("[%s] message handler error: %v", b.name, err)
		}
	}
}

// Route finds the command or callback handler for an update.
func Route(update tgbotapi.Update, commandHandlers, callbackHandlers map[string]Handler) (Handler, bool) {
	if update.Message != nil && update.Message.IsCommand() {
		handler, ok := commandHandlers[update.Message.Command()]
		return handler, ok
	}

	if update.CallbackQuery != nil {
		key, _, _ := strings.Cut(update.CallbackQuery.Data, ":")
		handler, ok := callbackHandlers[key]
		return handler, ok
	}

	return nil, false
}

// Stop halts the bot
func (b *Bot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopChan <- struct{}{}
	b.Client.StopReceivingUpdates()
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendMessageWithButtons(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.Client.Send(msg)
	return err
}

// SendLong sends text as several messages when it exceeds MessageLimit.
func (b *Bot) SendLong(chatID int64, text string) error {
	for i, chunk := range utils.SplitMessage(text, MessageLimit) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.DisableWebPagePreview = true
		if _, err := b.Client.Send(msg); err != nil {
			return fmt.Errorf("send part %d: %w", i+1, err)
		}
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops waiting.
func (b *Bot) AnswerCallback(query *tgbotapi.CallbackQuery, text string) error {
	_, err := b.Client.Request(tgbotapi.NewCallback(query.ID, text))
	return err
}
