package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sukalov/romagic/internal/logger"
)

// User is a bot user who has asked for lyrics.
type User struct {
	ChatID   int64
	Username sql.NullString
	TgName   sql.NullString
	AddedAt  time.Time
	Lookups  int
}

// Users records who uses the bot.
type Users struct {
	db *sql.DB
}

func NewUsers(database *sql.DB) *Users {
	return &Users{db: database}
}

// Register stores a user the first time they talk to the bot and reports
// whether a new row was created.
func (u *Users) Register(ctx context.Context, chatID int64, username, firstName, lastName string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	userName := sql.NullString{
		String: username,
		Valid:  username != "",
	}
	fullName := strings.TrimSpace(firstName + " " + lastName)
	tgName := sql.NullString{
		String: fullName,
		Valid:  fullName != "",
	}

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM users WHERE chat_id = ?)`
	if err := u.db.QueryRowContext(ctx, checkQuery, chatID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	if exists {
		return false, nil
	}

	insertQuery := `
		INSERT INTO users (
			chat_id,
			username,
			tg_name,
			added_at,
			lookups
		) VALUES (?, ?, ?, ?, ?)
	`
	_, err := u.db.ExecContext(ctx, insertQuery,
		chatID,
		userName,
		tgName,
		time.Now().Unix(),
		0,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert new user: %w", err)
	}

	logger.Info(fmt.Sprintf("new user registered: ID: %d, username: %s", chatID, userName.String))
	return true, nil
}

// RecordLookup counts one lyrics request of a registered user.
func (u *Users) RecordLookup(ctx context.Context, chatID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := u.db.ExecContext(ctx, `UPDATE users SET lookups = lookups + 1 WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// Get loads a registered user.
func (u *Users) Get(ctx context.Context, chatID int64) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		user    User
		addedAt int64
	)
	query := `SELECT chat_id, username, tg_name, added_at, lookups FROM users WHERE chat_id = ?`
	err := u.db.QueryRowContext(ctx, query, chatID).Scan(&user.ChatID, &user.Username, &user.TgName, &addedAt, &user.Lookups)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to load user: %w", err)
	}
	user.AddedAt = time.Unix(addedAt, 0)
	return user, nil
}
