// apps/go-rules/internal/history/store.go
//
// SQLite archive of finished games.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Recording one row per finished game and reading them back.
//
// Rows are replayable records of individual games; nothing here aggregates.

package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
)

//go:embed sql/*.sql
var migrations embed.FS

// ErrNotFinished is returned by Record for games still in progress.
var ErrNotFinished = errors.New("history: game is not finished")

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("history: game not found")

// Entry is one archived game.
type Entry struct {
	ID          string     `json:"id"`
	Word        string     `json:"word"`
	Outcome     game.State `json:"outcome"`
	GuessesUsed int        `json:"guessesUsed"`
	MaxGuesses  int        `json:"maxGuesses"`
	Scoring     string     `json:"scoring"`
	Guesses     []string   `json:"guesses"`
	FinishedAt  time.Time  `json:"finishedAt"`
}

// Store wraps the archive database.
type Store struct{ db *sql.DB }

// Open opens (and creates if missing) the SQLite file at dsn and migrates it.
func Open(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// migrate applies the embedded sql/*.sql files in lexical order, skipping applied ones.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Record archives a finished game. Recording the same game twice is ignored.
func (s *Store) Record(ctx context.Context, g *game.Game, at time.Time) error {
	if !g.ShouldEndGame() {
		return ErrNotFinished
	}
	submitted := g.Submitted()
	words := make([]string, len(submitted))
	for i, gs := range submitted {
		words[i] = gs.Word()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO finished_games
            (id, word, outcome, guesses_used, max_guesses, scoring, guess_words, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Word, string(g.State()), g.CurrentGuess, g.MaxGuesses, string(g.Scoring),
		strings.Join(words, ","), at.UTC().Format(time.RFC3339),
	)
	return err
}

const selectEntry = `SELECT id, word, outcome, guesses_used, max_guesses, scoring, guess_words, finished_at
                     FROM finished_games`

// Get loads one archived game.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectEntry+` WHERE id=?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// Recent returns the most recently finished games, newest first.
// Default limit is 20 if not specified.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, selectEntry+` ORDER BY finished_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var outcome, guessWords, finished string
	if err := row.Scan(&e.ID, &e.Word, &outcome, &e.GuessesUsed, &e.MaxGuesses, &e.Scoring, &guessWords, &finished); err != nil {
		return nil, err
	}
	e.Outcome = game.State(outcome)
	e.Guesses = []string{}
	if guessWords != "" {
		e.Guesses = strings.Split(guessWords, ",")
	}
	e.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return &e, nil
}
