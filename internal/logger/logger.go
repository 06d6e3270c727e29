package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sukalov/romagic/internal/utils"
)

var (
	ChannelID int64
	once      sync.Once
	botClient BotClient

	level = new(slog.LevelVar)
	local = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
)

type BotClient interface {
	SendMessage(chatID int64, text string) error
}

// Init mirrors log records to the Telegram channel named by LOG_CHANNEL_ID.
func Init(client BotClient) error {
	var initErr error
	once.Do(func() {
		env, err := utils.LoadEnv([]string{"LOG_CHANNEL_ID"})
		if err != nil {
			initErr = fmt.Errorf("failed to load LOG_CHANNEL_ID: %w", err)
			return
		}

		ChannelID, err = strconv.ParseInt(env["LOG_CHANNEL_ID"], 10, 64)
		if err != nil {
			initErr = fmt.Errorf("failed to parse LOG_CHANNEL_ID: %w", err)
			return
		}

		botClient = client
	})

	return initErr
}

// SetLevel sets the minimum level for both stderr and the channel.
// Accepts debug, info, warn and error; anything else means info.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

func Info(message string) {
	emit(slog.LevelInfo, "ℹ️ INFO", message)
}

func Error(message string) {
	emit(slog.LevelError, "❌ ERROR", message)
}

func Debug(message string) {
	emit(slog.LevelDebug, "🔍 DEBUG", message)
}

func Success(message string) {
	emit(slog.LevelInfo, "✅ SUCCESS", message)
}

// LogWithErr logs message at info level, or at error level with err attached,
// and returns err wrapped with message.
func LogWithErr(message string, err error) error {
	if err == nil {
		Info(message)
		return nil
	}

	Error(fmt.Sprintf("%s\nError: %v", message, err))
	return fmt.Errorf("%s: %w", message, err)
}

func emit(lvl slog.Level, prefix, message string) {
	if lvl < level.Level() {
		return
	}
	local.Log(context.Background(), lvl, message)
	sendLog(prefix, message)
}

func sendLog(prefix, message string) {
	client, chatID := botClient, ChannelID
	if client == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)

	go func() {
		if err := client.SendMessage(chatID, logMessage); err != nil {
			fmt.Printf("Failed to send log to channel: %v\nLog was: %s\n", err, logMessage)
		}
	}()
}
