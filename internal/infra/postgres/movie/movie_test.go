package infra_postgres_movie

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/rconjoe/flickpicker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovieInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db         *sqlx.DB
	mock       sqlmock.Sqlmock
	repository *Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "postgres")
	return &resources{
		db:         sqlxDB,
		mock:       mock,
		repository: New(sqlxDB),
		ctx:        context.Background(),
	}
}

type MovieBuilder struct {
	m model.Movie
}

func NewMovieBuilder() *MovieBuilder {
	return &MovieBuilder{
		m: model.Movie{
			ID:       1700000000000,
			Title:    "Test Movie",
			Year:     "2024",
			Category: "Drama",
			Runtime:  "120 min",
		},
	}
}

func (b *MovieBuilder) WithID(id int64) *MovieBuilder {
	b.m.ID = id
	return b
}

func (b *MovieBuilder) Build() model.Movie {
	return b.m
}

func (suite *MovieInfraUnitSuite) TestLoad(t provider.T) {
	t.Run("Should map rows to domain movies", func(t provider.T) {
		r := initResources(t)
		rows := sqlmock.NewRows([]string{"id", "title", "year", "vote_count", "requested_username"}).
			AddRow(int64(1), "Inception", "2010", 3, "Alice").
			AddRow(int64(2), "Matrix", "1999", 0, "Bob")
		r.mock.ExpectQuery("SELECT (.+) FROM movies ORDER BY id").WillReturnRows(rows)

		movies, err := r.repository.Load(r.ctx)
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, model.Year("2010"), movies[0].Year)
		assert.Equal(t, 3, movies[0].VoteCount)
		assert.Equal(t, "Bob", movies[1].RequestedBy.Username)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should wrap query errors", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery("SELECT (.+) FROM movies").WillReturnError(errors.New("boom"))

		_, err := r.repository.Load(r.ctx)
		assert.ErrorContains(t, err, "failed to query movies")
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MovieInfraUnitSuite) TestLoadByID(t provider.T) {
	t.Run("Should return ErrMovieNotFound on empty result", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery("SELECT (.+) FROM movies WHERE id").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := r.repository.LoadByID(r.ctx, 3)
		assert.ErrorIs(t, err, model.ErrMovieNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MovieInfraUnitSuite) TestStore(t provider.T) {
	t.Run("Should insert a movie", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectExec("INSERT INTO movies").WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, r.repository.Store(r.ctx, NewMovieBuilder().Build()))
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should translate unique violations", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectExec("INSERT INTO movies").WillReturnError(&pq.Error{Code: uniqueViolation})

		err := r.repository.Store(r.ctx, NewMovieBuilder().Build())
		assert.ErrorIs(t, err, model.ErrDuplicateMovie)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MovieInfraUnitSuite) TestAddVotes(t provider.T) {
	t.Run("Should return the new count", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery("UPDATE movies").
			WithArgs(int64(1), 1).
			WillReturnRows(sqlmock.NewRows([]string{"vote_count"}).AddRow(4))

		n, err := r.repository.AddVotes(r.ctx, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should report a missing movie", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery("UPDATE movies").
			WithArgs(int64(9), -1).
			WillReturnRows(sqlmock.NewRows([]string{"vote_count"}))

		_, err := r.repository.AddVotes(r.ctx, 9, -1)
		assert.ErrorIs(t, err, model.ErrMovieNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MovieInfraUnitSuite) TestReplaceAll(t provider.T) {
	t.Run("Should replace the table in one transaction", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectBegin()
		r.mock.ExpectExec("DELETE FROM movies").WillReturnResult(sqlmock.NewResult(0, 5))
		r.mock.ExpectExec("INSERT INTO movies").WillReturnResult(sqlmock.NewResult(1, 1))
		r.mock.ExpectExec("INSERT INTO movies").WillReturnResult(sqlmock.NewResult(1, 1))
		r.mock.ExpectCommit()

		err := r.repository.ReplaceAll(r.ctx, []model.Movie{
			NewMovieBuilder().WithID(1).Build(),
			NewMovieBuilder().WithID(2).Build(),
		})
		assert.NoError(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should roll back when an insert fails", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectBegin()
		r.mock.ExpectExec("DELETE FROM movies").WillReturnResult(sqlmock.NewResult(0, 0))
		r.mock.ExpectExec("INSERT INTO movies").WillReturnError(errors.New("insert error"))
		r.mock.ExpectRollback()

		err := r.repository.ReplaceAll(r.ctx, []model.Movie{NewMovieBuilder().Build()})
		assert.ErrorContains(t, err, "failed to insert movie")
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func TestMovieInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MovieInfraUnitSuite))
}
