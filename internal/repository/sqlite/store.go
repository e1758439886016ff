// Package sqlite persists card and user snapshots in a SQLite database,
// selected with STORAGE_DRIVER=sqlite. Each save rewrites the snapshot
// tables in one transaction, mirroring the full-flush contract of the JSON
// driver while keeping the data queryable with ordinary SQL tools.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS cards (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL,
	front          TEXT NOT NULL,
	back           TEXT NOT NULL,
	difficulty     TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMP NOT NULL,
	last_reviewed  TIMESTAMP,
	next_review    TIMESTAMP NOT NULL,
	review_count   INTEGER NOT NULL DEFAULT 0,
	success_streak INTEGER NOT NULL DEFAULT 0,
	position       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS review_history (
	card_id     TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	reviewed_at TIMESTAMP NOT NULL,
	success     BOOLEAN NOT NULL,
	PRIMARY KEY (card_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_cards_owner ON cards(owner_id);
`

type store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (or creates) the snapshot database at path and ensures the
// schema exists.
func Open(path string) (repository.SnapshotStore, error) {
	log := logger.Default().WithPrefix("sqlite")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening snapshot database: %s", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Single connection: every save rewrites whole tables, so there is
	// exactly one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &store{db: db, log: log}, nil
}

func (s *store) LoadCards(ctx context.Context) ([]models.Card, error) {
	history, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqlBuilder.
		Select("id", "owner_id", "front", "back", "difficulty", "category",
			"created_at", "last_reviewed", "next_review", "review_count", "success_streak").
		From("cards").
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		var lastReviewed sql.NullTime
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Front, &c.Back, &c.Difficulty, &c.Category,
			&c.CreatedAt, &lastReviewed, &c.NextReview, &c.ReviewCount, &c.SuccessStreak); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		if lastReviewed.Valid {
			t := lastReviewed.Time
			c.LastReviewed = &t
		}
		c.ReviewHistory = history[c.ID]
		cards = append(cards, c)
	}
	s.log.Debug("loaded %d cards", len(cards))
	return cards, rows.Err()
}

func (s *store) loadHistory(ctx context.Context) (map[string][]models.ReviewEntry, error) {
	query, args, err := sqlBuilder.
		Select("card_id", "reviewed_at", "success").
		From("review_history").
		OrderBy("card_id", "seq").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review history: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]models.ReviewEntry)
	for rows.Next() {
		var cardID string
		var entry models.ReviewEntry
		if err := rows.Scan(&cardID, &entry.ReviewedAt, &entry.Success); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history[cardID] = append(history[cardID], entry)
	}
	return history, rows.Err()
}

func (s *store) SaveCards(ctx context.Context, cards []models.Card) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM review_history`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return err
		}

		for pos, c := range cards {
			var lastReviewed any
			if c.LastReviewed != nil {
				lastReviewed = *c.LastReviewed
			}
			query, args, err := sqlBuilder.
				Insert("cards").
				Columns("id", "owner_id", "front", "back", "difficulty", "category",
					"created_at", "last_reviewed", "next_review", "review_count", "success_streak", "position").
				Values(c.ID, c.OwnerID, c.Front, c.Back, string(c.Difficulty), c.Category,
					c.CreatedAt, lastReviewed, c.NextReview, c.ReviewCount, c.SuccessStreak, pos).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert card %s: %w", c.ID, err)
			}

			for seq, entry := range c.ReviewHistory {
				query, args, err := sqlBuilder.
					Insert("review_history").
					Columns("card_id", "seq", "reviewed_at", "success").
					Values(c.ID, seq, entry.ReviewedAt, entry.Success).
					ToSql()
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx, query, args...); err != nil {
					return fmt.Errorf("insert history for %s: %w", c.ID, err)
				}
			}
		}
		s.log.Debug("flushed %d cards", len(cards))
		return nil
	})
}

func (s *store) LoadUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := sqlBuilder.
		Select("id", "username", "password_hash", "created_at").
		From("users").
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	s.log.Debug("loaded %d users", len(users))
	return users, rows.Err()
}

func (s *store) SaveUsers(ctx context.Context, users []models.User) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return err
		}
		for _, u := range users {
			query, args, err := sqlBuilder.
				Insert("users").
				Columns("id", "username", "password_hash", "created_at").
				Values(u.ID, u.Username, u.PasswordHash, u.CreatedAt).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert user %s: %w", u.Username, err)
			}
		}
		s.log.Debug("flushed %d users", len(users))
		return nil
	})
}

func (s *store) Close() error {
	return s.db.Close()
}

func (s *store) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
