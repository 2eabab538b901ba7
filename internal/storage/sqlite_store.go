package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/duetoday/internal/logging"
	"github.com/sandeepkv93/duetoday/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps state in three small tables. A store_meta row marks the
// database as initialized, so an empty record after a save is still Ready.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewSQLiteStore(db *sql.DB, logger *slog.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return &SQLiteStore{db: db, logger: logging.OrDiscard(logger), now: time.Now}, nil
}

func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (model.State, bool) {
	st, err := s.read(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.DebugContext(ctx, "sqlite state not initialized")
		} else {
			s.logger.WarnContext(ctx, "sqlite state unreadable, treating as uninitialized", "err", err)
		}
		return model.State{}, false
	}
	return st, true
}

func (s *SQLiteStore) read(ctx context.Context) (model.State, error) {
	var savedAt string
	if err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM store_meta WHERE id = 1`).Scan(&savedAt); err != nil {
		return model.State{}, err
	}

	st := model.NewState()
	rows, err := s.db.QueryContext(ctx, `SELECT task_key, last_completed FROM completion_records`)
	if err != nil {
		return model.State{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return model.State{}, err
		}
		d, err := model.ParseDate(raw)
		if err != nil {
			return model.State{}, fmt.Errorf("%w: %q: %v", ErrMalformed, key, err)
		}
		st.Completions[key] = d
	}
	if err := rows.Err(); err != nil {
		return model.State{}, err
	}

	anchorRows, err := s.db.QueryContext(ctx, `SELECT anchor_key, start_week FROM rotation_anchors`)
	if err != nil {
		return model.State{}, err
	}
	defer anchorRows.Close()
	for anchorRows.Next() {
		var key string
		var week int
		if err := anchorRows.Scan(&key, &week); err != nil {
			return model.State{}, err
		}
		st.Anchors[key] = week
	}
	if err := anchorRows.Err(); err != nil {
		return model.State{}, err
	}
	if err := st.Validate(); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return st, nil
}

func (s *SQLiteStore) Save(ctx context.Context, st model.State) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := s.replace(ctx, st); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	s.logger.InfoContext(ctx, "sqlite state saved", "completions", len(st.Completions))
	return nil
}

func (s *SQLiteStore) replace(ctx context.Context, st model.State) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM completion_records`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM rotation_anchors`); err != nil {
		return err
	}
	for key, d := range st.Completions {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO completion_records (task_key, last_completed)
			VALUES (?, ?)`, key, d.String()); err != nil {
			return err
		}
	}
	for key, week := range st.Anchors {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO rotation_anchors (anchor_key, start_week)
			VALUES (?, ?)`, key, week); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO store_meta (id, saved_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`,
		s.now().UTC().Format(sqliteTimeLayout)); err != nil {
		return err
	}
	return tx.Commit()
}
