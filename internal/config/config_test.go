package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/sukalov/romagic/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GENIUS_ACCESS_TOKEN", "GENIUS_API_URL", "MUSIXMATCH_API_KEY", "MUSIXMATCH_API_URL",
		"REDIS_URL", "REDIS_PASSWORD", "LYRICS_CACHE_TTL", "TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN",
		"HTTP_TIMEOUT", "BOT_TOKEN", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := config.Load()

	if cfg.GeniusAPIURL != "https://api.genius.com" {
		t.Fatalf("GeniusAPIURL = %q", cfg.GeniusAPIURL)
	}
	if cfg.MusixmatchAPIURL != "https://api.musixmatch.com/ws/1.1" {
		t.Fatalf("MusixmatchAPIURL = %q", cfg.MusixmatchAPIURL)
	}
	if cfg.CacheTTL != 24*time.Hour || cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.CacheTTL, cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.TitleLookupEnabled() || cfg.CacheEnabled() || cfg.CatalogEnabled() || cfg.MusixmatchEnabled() {
		t.Fatalf("nothing should be enabled: %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without sources")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENIUS_ACCESS_TOKEN", " token ")
	t.Setenv("REDIS_URL", "localhost:6379")
	t.Setenv("LYRICS_CACHE_TTL", "90m")
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := config.Load()
	if cfg.GeniusToken != "token" {
		t.Fatalf("GeniusToken = %q", cfg.GeniusToken)
	}
	if cfg.CacheTTL != 90*time.Minute {
		t.Fatalf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("invalid duration should fall back, got %v", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateCacheNeedsTitleLookup(t *testing.T) {
	cfg := config.Config{MusixmatchKey: "k", RedisURL: "localhost:6379"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for cache without title lookup")
	}
}
