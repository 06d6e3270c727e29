package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sukalov/romagic/internal/app"
	"github.com/sukalov/romagic/internal/bot"
	"github.com/sukalov/romagic/internal/bot/admin"
	"github.com/sukalov/romagic/internal/bot/client"
	"github.com/sukalov/romagic/internal/bot/common"
	"github.com/sukalov/romagic/internal/config"
	"github.com/sukalov/romagic/internal/logger"
	"github.com/sukalov/romagic/internal/utils"
)

func main() {
	tokens, err := utils.LoadEnv([]string{"BOT_TOKEN"})
	if err != nil {
		log.Fatalf("required env missing: %v", err)
	}

	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build lyrics service: %v", err)
	}
	defer a.Close()

	lyricsBot, err := bot.New("romagic", tokens["BOT_TOKEN"])
	if err != nil {
		log.Fatalf("failed to start bot: %v", err)
	}

	if os.Getenv("LOG_CHANNEL_ID") != "" {
		if err := logger.Init(lyricsBot); err != nil {
			log.Printf("log channel disabled: %v", err)
		}
	}

	handlers := newClientHandlers(a)
	adminHandlers := newAdminHandlers(a, utils.GetEnv("ADMIN_USERNAMES", ""))

	commandHandlers := handlers.Commands(common.GetCommandHandlers())
	commandHandlers = adminHandlers.Commands(commandHandlers)
	callbackHandlers := adminHandlers.Callbacks(common.GetCallbackHandlers())
	messageHandlers := []bot.Handler{adminHandlers.Intercept(handlers.TextHandler())}

	go lyricsBot.Start(commandHandlers, messageHandlers, callbackHandlers)
	logger.Success("romagic bot started")

	<-ctx.Done()
	lyricsBot.Stop()
	logger.Info("romagic bot stopped")
}

// newClientHandlers keeps unconfigured backends as nil interfaces.
func newClientHandlers(a *app.App) *client.ClientHandlers {
	var tracks client.TrackLookup
	if a.Musixmatch != nil {
		tracks = a.Musixmatch
	}
	var users client.UserRegistry
	if a.Users != nil {
		users = a.Users
	}
	return client.NewClientHandlers(a.Service, tracks, users)
}

func newAdminHandlers(a *app.App, usernames string) *admin.AdminHandlers {
	var catalog admin.CatalogWriter
	if a.Catalog != nil {
		catalog = a.Catalog
	}
	var stats admin.StatsSource
	if a.Cache != nil {
		stats = a.Cache
	}
	return admin.NewAdminHandlers(strings.Split(usernames, ","), catalog, stats)
}
