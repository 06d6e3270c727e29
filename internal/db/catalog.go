package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sukalov/romagic/internal/logger"
	"github.com/sukalov/romagic/internal/lyrics"
)

// CatalogSourceName labels lyrics served from the local catalog.
const CatalogSourceName = "catalog"

// ErrNotFound is returned when no row matches a lookup.
var ErrNotFound = errors.New("db: not found")

// Entry is one row of the lyrics catalog.
type Entry struct {
	ISRC         string
	Title        string
	Artist       sql.NullString
	Body         string
	Language     sql.NullString
	PreRomanized bool
	Lookups      int
}

// Catalog is a lyrics table keyed by ISRC.
type Catalog struct {
	db *sql.DB
}

var _ lyrics.CatalogSource = (*Catalog)(nil)

func NewCatalog(database *sql.DB) *Catalog {
	return &Catalog{db: database}
}

// Lyrics returns the entry for isrc, or ErrNotFound.
func (c *Catalog) Lyrics(ctx context.Context, isrc string) (Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT isrc, title, artist, body, language, pre_romanized, lookups FROM lyrics WHERE isrc = ?`
	var entry Entry
	err := c.db.QueryRowContext(ctx, query, normalizeISRC(isrc)).Scan(
		&entry.ISRC, &entry.Title, &entry.Artist, &entry.Body, &entry.Language, &entry.PreRomanized, &entry.Lookups,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query lyrics: %w", err)
	}
	return entry, nil
}

// Save inserts or replaces the entry with the same ISRC. The lookup counter
// of an existing row is kept.
func (c *Catalog) Save(ctx context.Context, entry Entry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	isrc := normalizeISRC(entry.ISRC)
	if isrc == "" {
		return fmt.Errorf("isrc required")
	}

	query := `
		INSERT INTO lyrics (isrc, title, artist, body, language, pre_romanized)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(isrc) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			body = excluded.body,
			language = excluded.language,
			pre_romanized = excluded.pre_romanized
	`
	_, err := c.db.ExecContext(ctx, query,
		isrc, entry.Title, entry.Artist, entry.Body, entry.Language, entry.PreRomanized,
	)
	if err != nil {
		return fmt.Errorf("failed to save lyrics: %w", err)
	}
	return nil
}

// IncrementLookups bumps the lookup counter of an entry.
func (c *Catalog) IncrementLookups(ctx context.Context, isrc string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `UPDATE lyrics SET lookups = lookups + 1 WHERE isrc = ?`
	result, err := c.db.ExecContext(ctx, query, normalizeISRC(isrc))
	if err != nil {
		return fmt.Errorf("failed to increment lookups: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no lyrics found with isrc: %s", isrc)
	}

	return nil
}

// Fetch serves catalog lyrics as a lyrics source. A missing language means
// "en".
func (c *Catalog) Fetch(ctx context.Context, isrc string) lyrics.FetchResult {
	if normalizeISRC(isrc) == "" {
		return lyrics.NotFound("empty isrc")
	}

	entry, err := c.Lyrics(ctx, isrc)
	if errors.Is(err, ErrNotFound) {
		return lyrics.NotFound("isrc not in local catalog")
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Catalog lookup failed\nISRC: %s\nError: %v", isrc, err))
		return lyrics.NotFound("catalog lookup failed")
	}
	if strings.TrimSpace(entry.Body) == "" {
		return lyrics.NotFound("empty lyrics body")
	}

	if err := c.IncrementLookups(ctx, entry.ISRC); err != nil {
		logger.Error(fmt.Sprintf("Failed to count catalog lookup: %v", err))
	}

	language := "en"
	if entry.Language.Valid && strings.TrimSpace(entry.Language.String) != "" {
		language = entry.Language.String
	}

	return lyrics.Found(lyrics.Raw{
		Text:         entry.Body,
		Language:     language,
		PreRomanized: entry.PreRomanized,
		Source:       CatalogSourceName,
	})
}

// FormatTrackName renders "Artist - Title", or just the title.
func FormatTrackName(entry Entry) string {
	var parts []string
	if entry.Artist.Valid && entry.Artist.String != "" {
		parts = append(parts, entry.Artist.String+" - ")
	}
	parts = append(parts, entry.Title)

	return strings.TrimSpace(strings.Join(parts, ""))
}

func normalizeISRC(isrc string) string {
	return strings.ToUpper(strings.TrimSpace(isrc))
}
