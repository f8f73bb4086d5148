package infra_postgres_movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rconjoe/flickpicker/internal/model"
)

const uniqueViolation = "23505"

const schema = `
	CREATE TABLE IF NOT EXISTS movies (
		id                  BIGINT PRIMARY KEY,
		title               TEXT NOT NULL,
		year                TEXT NOT NULL,
		category            TEXT NOT NULL DEFAULT '',
		runtime             TEXT NOT NULL DEFAULT '',
		ratings             TEXT NOT NULL DEFAULT '',
		vote_count          INTEGER NOT NULL DEFAULT 0,
		requested_user_id   TEXT NOT NULL DEFAULT '',
		requested_username  TEXT NOT NULL DEFAULT '',
		requested_platform  TEXT NOT NULL DEFAULT '',
		trailer_link        TEXT NOT NULL DEFAULT '',
		movie_link          TEXT NOT NULL DEFAULT '',
		modern_trailer_link TEXT NOT NULL DEFAULT '',
		image_url           TEXT NOT NULL DEFAULT '',
		language            TEXT NOT NULL DEFAULT '',
		date_watched        TEXT NOT NULL DEFAULT '',
		director            TEXT NOT NULL DEFAULT '',
		watched             BOOLEAN NOT NULL DEFAULT FALSE,
		subtitles           BOOLEAN NOT NULL DEFAULT FALSE,
		trailer_private     BOOLEAN NOT NULL DEFAULT FALSE,
		movie_private       BOOLEAN NOT NULL DEFAULT FALSE
	)
`

const columns = `id, title, year, category, runtime, ratings, vote_count,
	requested_user_id, requested_username, requested_platform,
	trailer_link, movie_link, modern_trailer_link, image_url,
	language, date_watched, director, watched, subtitles, trailer_private, movie_private`

const insertQuery = `
	INSERT INTO movies (` + columns + `)
	VALUES (:id, :title, :year, :category, :runtime, :ratings, :vote_count,
		:requested_user_id, :requested_username, :requested_platform,
		:trailer_link, :movie_link, :modern_trailer_link, :image_url,
		:language, :date_watched, :director, :watched, :subtitles, :trailer_private, :movie_private)
`

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create movies table: %w", err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context) ([]model.Movie, error) {
	query := `SELECT ` + columns + ` FROM movies ORDER BY id`

	var moviesDB []MovieDB
	if err := r.db.SelectContext(ctx, &moviesDB, query); err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	movies := make([]model.Movie, len(moviesDB))
	for i := range moviesDB {
		movies[i] = moviesDB[i].ToDomain()
	}
	return movies, nil
}

func (r *Repository) LoadByID(ctx context.Context, ID int64) (model.Movie, error) {
	query := `SELECT ` + columns + ` FROM movies WHERE id = $1`

	var movieDB MovieDB
	if err := r.db.GetContext(ctx, &movieDB, query, ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, model.ErrMovieNotFound
		}
		return model.Movie{}, fmt.Errorf("failed to load movie by id: %w", err)
	}

	return movieDB.ToDomain(), nil
}

func (r *Repository) Store(ctx context.Context, m model.Movie) error {
	if _, err := r.db.NamedExecContext(ctx, insertQuery, FromDomain(m)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.ErrDuplicateMovie
		}
		return fmt.Errorf("failed to store movie: %w", err)
	}
	return nil
}

// AddVotes applies the delta in one statement so concurrent voters never
// overwrite each other.
func (r *Repository) AddVotes(ctx context.Context, ID int64, delta int) (int, error) {
	query := `
		UPDATE movies
		SET vote_count = GREATEST(vote_count + $2, 0)
		WHERE id = $1
		RETURNING vote_count
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, ID, delta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, model.ErrMovieNotFound
		}
		return 0, fmt.Errorf("failed to update votes: %w", err)
	}
	return count, nil
}

func (r *Repository) ReplaceAll(ctx context.Context, movies []model.Movie) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear movies: %w", err)
	}

	for _, m := range movies {
		if _, err := tx.NamedExecContext(ctx, insertQuery, FromDomain(m)); err != nil {
			return fmt.Errorf("failed to insert movie %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}
