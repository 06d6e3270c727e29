// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sukalov/romagic/internal/lyrics/sources/genius"
	"github.com/sukalov/romagic/internal/lyrics/sources/musixmatch"
	"github.com/sukalov/romagic/internal/utils"
)

// Config holds every setting of the lyrics service and its front ends.
// Empty credentials switch the matching lookup off.
type Config struct {
	GeniusToken  string
	GeniusAPIURL string

	MusixmatchKey    string
	MusixmatchAPIURL string

	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration

	TursoURL   string
	TursoToken string

	HTTPTimeout time.Duration

	BotToken string
	LogLevel string
}

// Load reads the configuration. A .env file in the working directory is
// applied first; variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GeniusToken:      utils.GetEnv("GENIUS_ACCESS_TOKEN", ""),
		GeniusAPIURL:     utils.GetEnv("GENIUS_API_URL", genius.DefaultBaseURL),
		MusixmatchKey:    utils.GetEnv("MUSIXMATCH_API_KEY", ""),
		MusixmatchAPIURL: utils.GetEnv("MUSIXMATCH_API_URL", musixmatch.DefaultBaseURL),
		RedisURL:         utils.GetEnv("REDIS_URL", ""),
		RedisPassword:    utils.GetEnv("REDIS_PASSWORD", ""),
		CacheTTL:         utils.GetDuration("LYRICS_CACHE_TTL", 24*time.Hour),
		TursoURL:         utils.GetEnv("TURSO_DATABASE_URL", ""),
		TursoToken:       utils.GetEnv("TURSO_AUTH_TOKEN", ""),
		HTTPTimeout:      utils.GetDuration("HTTP_TIMEOUT", 15*time.Second),
		BotToken:         utils.GetEnv("BOT_TOKEN", ""),
		LogLevel:         strings.ToLower(utils.GetEnv("LOG_LEVEL", "info")),
	}
}

func (c Config) TitleLookupEnabled() bool { return c.GeniusToken != "" }
func (c Config) MusixmatchEnabled() bool  { return c.MusixmatchKey != "" }
func (c Config) CacheEnabled() bool       { return c.RedisURL != "" }
func (c Config) CatalogEnabled() bool     { return c.TursoURL != "" }

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if !c.TitleLookupEnabled() && !c.MusixmatchEnabled() && !c.CatalogEnabled() {
		return fmt.Errorf("no lyrics source configured: set GENIUS_ACCESS_TOKEN, MUSIXMATCH_API_KEY or TURSO_DATABASE_URL")
	}
	if c.CacheEnabled() && !c.TitleLookupEnabled() {
		return fmt.Errorf("REDIS_URL is set but GENIUS_ACCESS_TOKEN is not; the cache only serves title lookups")
	}
	return nil
}
