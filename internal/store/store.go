// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const dateLayout = "2006-01-02"

// Store wraps SQLite access for scheduling records, favorites and daily progress.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps every read behind the preceding write.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			word TEXT NOT NULL,
			sense INTEGER NOT NULL,
			pos TEXT NOT NULL,
			definition TEXT NOT NULL,
			due_ms INTEGER NOT NULL,
			interval_days INTEGER NOT NULL,
			ease REAL NOT NULL,
			reps INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (word, sense, pos, definition)
		);`,
		`CREATE TABLE IF NOT EXISTS favorites (
			word TEXT NOT NULL,
			sense INTEGER NOT NULL,
			pos TEXT NOT NULL,
			definition TEXT NOT NULL,
			added_at TEXT NOT NULL,
			PRIMARY KEY (word, sense, pos, definition)
		);`,
		`CREATE TABLE IF NOT EXISTS daily_progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			date TEXT NOT NULL,
			studied INTEGER NOT NULL,
			goal INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_due ON records(due_ms);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetRecord returns the stored record for key. ok is false when the card
// has never been graded.
func (s *Store) GetRecord(ctx context.Context, key model.CardKey) (rec model.Record, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT due_ms, interval_days, ease, reps FROM records
		 WHERE word = ? AND sense = ? AND pos = ? AND definition = ?`,
		key.Word, key.Sense, key.PartOfSpeech, key.Definition)
	if err := row.Scan(&rec.Due, &rec.Interval, &rec.Ease, &rec.Reps); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, false, nil
		}
		return model.Record{}, false, err
	}
	return rec, true, nil
}

// PutRecord inserts or replaces the record for key.
func (s *Store) PutRecord(ctx context.Context, key model.CardKey, rec model.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (word, sense, pos, definition, due_ms, interval_days, ease, reps, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (word, sense, pos, definition) DO UPDATE SET
			due_ms = excluded.due_ms,
			interval_days = excluded.interval_days,
			ease = excluded.ease,
			reps = excluded.reps,
			updated_at = excluded.updated_at`,
		key.Word, key.Sense, key.PartOfSpeech, key.Definition,
		rec.Due, rec.Interval, rec.Ease, rec.Reps,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// ListRecords returns every stored record, including those for cards no
// longer in the corpus.
func (s *Store) ListRecords(ctx context.Context) (model.Records, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, sense, pos, definition, due_ms, interval_days, ease, reps FROM records`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := model.Records{}
	for rows.Next() {
		var key model.CardKey
		var rec model.Record
		if err := rows.Scan(&key.Word, &key.Sense, &key.PartOfSpeech, &key.Definition,
			&rec.Due, &rec.Interval, &rec.Ease, &rec.Reps); err != nil {
			return nil, err
		}
		result[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HasFavorite reports whether key is a favorite.
func (s *Store) HasFavorite(ctx context.Context, key model.CardKey) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE word = ? AND sense = ? AND pos = ? AND definition = ?`,
		key.Word, key.Sense, key.PartOfSpeech, key.Definition).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddFavorite marks key as a favorite. Adding twice is a no-op.
func (s *Store) AddFavorite(ctx context.Context, key model.CardKey) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO favorites (word, sense, pos, definition, added_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (word, sense, pos, definition) DO NOTHING`,
		key.Word, key.Sense, key.PartOfSpeech, key.Definition,
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// RemoveFavorite unmarks key. Removing a missing favorite is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, key model.CardKey) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE word = ? AND sense = ? AND pos = ? AND definition = ?`,
		key.Word, key.Sense, key.PartOfSpeech, key.Definition)
	return err
}

// ListFavorites returns every favorite key.
func (s *Store) ListFavorites(ctx context.Context) (model.Favorites, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, sense, pos, definition FROM favorites`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := model.Favorites{}
	for rows.Next() {
		var key model.CardKey
		if err := rows.Scan(&key.Word, &key.Sense, &key.PartOfSpeech, &key.Definition); err != nil {
			return nil, err
		}
		result[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetDailyProgress returns the stored progress. ok is false when nothing
// has been saved yet.
func (s *Store) GetDailyProgress(ctx context.Context) (p model.DailyProgress, ok bool, err error) {
	var date string
	row := s.db.QueryRowContext(ctx, `SELECT date, studied, goal FROM daily_progress WHERE id = 1`)
	if err := row.Scan(&date, &p.Studied, &p.Goal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DailyProgress{}, false, nil
		}
		return model.DailyProgress{}, false, err
	}
	parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return model.DailyProgress{}, false, err
	}
	p.Date = parsed
	return p, true, nil
}

// SaveDailyProgress stores p, replacing any previous value.
func (s *Store) SaveDailyProgress(ctx context.Context, p model.DailyProgress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_progress (id, date, studied, goal) VALUES (1, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET date = excluded.date, studied = excluded.studied, goal = excluded.goal`,
		p.Date.Format(dateLayout), p.Studied, p.Goal)
	return err
}

// Reset deletes every record and favorite.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}
