// Package infra_sqlite_records is the client's indexed record store: movies
// keyed by id, each flagged as synced with the server or still pending.
package infra_sqlite_records

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rconjoe/flickpicker/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS movies (
	id         INTEGER PRIMARY KEY,
	payload    TEXT    NOT NULL,
	synced     INTEGER NOT NULL DEFAULT 1,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS movies_synced_idx ON movies (synced);
`

type record struct {
	ID        int64  `db:"id"`
	Payload   string `db:"payload"`
	Synced    bool   `db:"synced"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r record) toDomain() (model.Movie, error) {
	var m model.Movie
	if err := json.Unmarshal([]byte(r.Payload), &m); err != nil {
		return model.Movie{}, fmt.Errorf("decode record %d: %w", r.ID, err)
	}
	m.ID = r.ID
	return m, nil
}

func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Put inserts or replaces one movie record.
func (s *Store) Put(ctx context.Context, m model.Movie, synced bool) error {
	return s.put(ctx, s.db, m, synced)
}

// PutAll mirrors a server catalog. Pending records are left alone.
func (s *Store) PutAll(ctx context.Context, movies []model.Movie) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range movies {
		var pending bool
		err := tx.GetContext(ctx, &pending, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = ? AND synced = 0)`, m.ID)
		if err != nil {
			return err
		}
		if pending {
			continue
		}
		if err := s.put(ctx, tx, m, true); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) All(ctx context.Context) ([]model.Movie, error) {
	return s.selectMovies(ctx, `SELECT id, payload, synced, updated_at FROM movies ORDER BY id`)
}

func (s *Store) Unsynced(ctx context.Context) ([]model.Movie, error) {
	return s.selectMovies(ctx, `SELECT id, payload, synced, updated_at FROM movies WHERE synced = 0 ORDER BY id`)
}

func (s *Store) MarkSynced(ctx context.Context, ID int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE movies SET synced = 1, updated_at = ? WHERE id = ?`, s.now().UnixMilli(), ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrMovieNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, ID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, ID)
	return err
}

func (s *Store) put(ctx context.Context, ex sqlx.ExtContext, m model.Movie, synced bool) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = sqlx.NamedExecContext(ctx, ex, `
		INSERT INTO movies (id, payload, synced, updated_at)
		VALUES (:id, :payload, :synced, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			payload = excluded.payload,
			synced = excluded.synced,
			updated_at = excluded.updated_at`,
		record{ID: m.ID, Payload: string(payload), Synced: synced, UpdatedAt: s.now().UnixMilli()},
	)
	return err
}

func (s *Store) selectMovies(ctx context.Context, query string) ([]model.Movie, error) {
	var rows []record
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	movies := make([]model.Movie, 0, len(rows))
	for _, r := range rows {
		m, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, nil
}
