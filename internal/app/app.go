// Package app assembles the lyrics service from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/sukalov/romagic/internal/config"
	"github.com/sukalov/romagic/internal/db"
	"github.com/sukalov/romagic/internal/logger"
	"github.com/sukalov/romagic/internal/lyrics"
	"github.com/sukalov/romagic/internal/lyrics/romanizer"
	"github.com/sukalov/romagic/internal/lyrics/sources/genius"
	"github.com/sukalov/romagic/internal/lyrics/sources/musixmatch"
	"github.com/sukalov/romagic/internal/redis"
)

// App holds the wired service and the optional backends behind it. Optional
// parts are nil when not configured.
type App struct {
	Service    *lyrics.Service
	Musixmatch *musixmatch.Client
	Catalog    *db.Catalog
	Users      *db.Users
	Cache      *redis.LyricsCache

	closers []func()
}

// Build connects every configured backend.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{}

	engine, err := romanizer.New()
	if err != nil {
		return nil, fmt.Errorf("build romanizer: %w", err)
	}

	var titles lyrics.TitleSource
	if cfg.TitleLookupEnabled() {
		searcher, err := genius.New(cfg.GeniusToken, cfg.GeniusAPIURL,
			genius.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		if err != nil {
			return nil, err
		}
		titles = genius.NewSource(searcher, genius.NewPageClient(cfg.HTTPTimeout))
	}

	if cfg.CacheEnabled() && titles != nil {
		client, err := redis.NewClient(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.Cache = redis.NewLyricsCache(client, cfg.CacheTTL)
		titles = lyrics.NewCachedTitleSource(titles, a.Cache)
	}

	var catalogs []lyrics.CatalogSource
	if cfg.CatalogEnabled() {
		database, err := db.Open(ctx, cfg.TursoURL, cfg.TursoToken)
		if err != nil {
			a.Close()
			return nil, logger.LogWithErr("lyrics catalog unavailable", err)
		}
		a.closers = append(a.closers, func() { db.Close(database) })
		if err := db.Migrate(ctx, database); err != nil {
			a.Close()
			return nil, logger.LogWithErr("lyrics catalog migration failed", err)
		}
		a.attachDatabase(database)
		catalogs = append(catalogs, a.Catalog)
	}

	if cfg.MusixmatchEnabled() {
		client, err := musixmatch.New(cfg.MusixmatchKey, cfg.MusixmatchAPIURL,
			musixmatch.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Musixmatch = client
		catalogs = append(catalogs, musixmatch.NewSource(client))
	}

	var catalog lyrics.CatalogSource
	if len(catalogs) > 0 {
		catalog = lyrics.FirstFound(catalogs...)
	}

	a.Service = lyrics.NewService(engine, titles, catalog)
	logger.Debug(fmt.Sprintf("lyrics service ready: title lookup %v, cache %v, catalogs %d",
		titles != nil, a.Cache != nil, len(catalogs)))
	return a, nil
}

func (a *App) attachDatabase(database *sql.DB) {
	a.Catalog = db.NewCatalog(database)
	a.Users = db.NewUsers(database)
}

// Close releases every backend connection.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
