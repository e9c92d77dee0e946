// Package history keeps the most recently saved enhancements in a small
// SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/tigerprompts/pkg/models"
)

// DefaultLimit is the number of saved prompts kept.
const DefaultLimit = 10

// previewLen is the number of characters of the original prompt kept.
const previewLen = 50

// ErrNotFound is returned when no saved prompt has the requested ID.
var ErrNotFound = errors.New("saved prompt not found")

const createTableSQL = `
CREATE TABLE IF NOT EXISTS saved_prompts (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	original TEXT NOT NULL,
	enhanced TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// Store persists saved prompts, keeping only the newest Limit entries.
type Store struct {
	db    *sql.DB
	limit int
	now   func() time.Time
}

// Open opens or creates the store at path. Use ":memory:" for a throwaway
// store. A limit below 1 means DefaultLimit.
func Open(path string, limit int) (*Store, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// one connection keeps ":memory:" databases shared and writes serialized
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	log.Debug().Str("path", path).Int("limit", limit).Msg("History store opened")
	return &Store{db: db, limit: limit, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Preview shortens an original prompt the way it is stored.
func Preview(original string) string {
	r := []rune(original)
	if len(r) > previewLen {
		r = r[:previewLen]
	}
	return string(r) + "..."
}

// Save stores an enhancement and drops the oldest entries beyond the limit.
func (s *Store) Save(ctx context.Context, original, enhanced string) (models.SavedPrompt, error) {
	p := models.SavedPrompt{
		ID:        uuid.NewString(),
		Original:  Preview(original),
		Enhanced:  enhanced,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return p, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO saved_prompts (id, original, enhanced, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Original, p.Enhanced, p.Timestamp,
	); err != nil {
		return p, fmt.Errorf("save prompt: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM saved_prompts WHERE seq NOT IN (SELECT seq FROM saved_prompts ORDER BY seq DESC LIMIT ?)`,
		s.limit,
	); err != nil {
		return p, fmt.Errorf("prune saved prompts: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return p, fmt.Errorf("commit save: %w", err)
	}
	return p, nil
}

// List returns the saved prompts, newest first.
func (s *Store) List(ctx context.Context) ([]models.SavedPrompt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original, enhanced, created_at FROM saved_prompts ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list saved prompts: %w", err)
	}
	defer rows.Close()

	out := []models.SavedPrompt{}
	for rows.Next() {
		var p models.SavedPrompt
		if err := rows.Scan(&p.ID, &p.Original, &p.Enhanced, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("scan saved prompt: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns the saved prompt with id.
func (s *Store) Get(ctx context.Context, id string) (models.SavedPrompt, error) {
	var p models.SavedPrompt
	err := s.db.QueryRowContext(ctx,
		`SELECT id, original, enhanced, created_at FROM saved_prompts WHERE id = ?`, id,
	).Scan(&p.ID, &p.Original, &p.Enhanced, &p.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("get saved prompt: %w", err)
	}
	return p, nil
}

// Delete removes the saved prompt with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_prompts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete saved prompt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
