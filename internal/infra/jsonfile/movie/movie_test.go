package infra_jsonfile_movie

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/rconjoe/flickpicker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovieJSONFileSuite struct {
	suite.Suite
}

type resources struct {
	dir        string
	path       string
	repository *Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	dir, err := os.MkdirTemp("", "catalog-*")
	require.NoError(t, err)
	path := filepath.Join(dir, "Data", "movieList.json")

	return &resources{
		dir:        dir,
		path:       path,
		repository: New(path),
		ctx:        context.Background(),
	}
}

func validMovie(id int64) model.Movie {
	return model.Movie{
		ID:       id,
		Title:    "Inception",
		Year:     "2010",
		Category: "Sci-Fi",
		Runtime:  "148 min",
	}
}

func (s *MovieJSONFileSuite) TestLoad(t provider.T) {
	t.Run("Should return an empty catalog when the file is missing", func(t provider.T) {
		r := initResources(t)
		defer os.RemoveAll(r.dir)

		movies, err := r.repository.Load(r.ctx)
		assert.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})

	t.Run("Should accept numeric years from generated files", func(t provider.T) {
		r := initResources(t)
		defer os.RemoveAll(r.dir)

		require.NoError(t, os.MkdirAll(filepath.Dir(r.path), 0o755))
		raw := `[{"id": 7, "title": "Heat", "year": 1995, "voteCount": 2}]`
		require.NoError(t, os.WriteFile(r.path, []byte(raw), 0o644))

		movies, err := r.repository.Load(r.ctx)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, model.Year("1995"), movies[0].Year)
		assert.Equal(t, 2, movies[0].VoteCount)
	})

	t.Run("Should fail on malformed JSON", func(t provider.T) {
		r := initResources(t)
		defer os.RemoveAll(r.dir)

		require.NoError(t, os.MkdirAll(filepath.Dir(r.path), 0o755))
		require.NoError(t, os.WriteFile(r.path, []byte(`{"oops"`), 0o644))

		_, err := r.repository.Load(r.ctx)
		assert.ErrorContains(t, err, "failed to decode catalog")
	})
}

func (s *MovieJSONFileSuite) TestStore(t provider.T) {
	t.Run("Should append and reject duplicate ids", func(t provider.T) {
		r := initResources(t)
		defer os.RemoveAll(r.dir)

		require.NoError(t, r.repository.Store(r.ctx, validMovie(1)))
		require.NoError(t, r.repository.Store(r.ctx, validMovie(2)))
		assert.ErrorIs(t, r.repository.Store(r.ctx, validMovie(1)), model.ErrDuplicateMovie)

		movies, err := New(r.path).Load(r.ctx)
		require.NoError(t, err)
		assert.Len(t, movies, 2)

		m, err := r.repository.LoadByID(r.ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), m.ID)

		_, err = r.repository.LoadByID(r.ctx, 3)
		assert.ErrorIs(t, err, model.ErrMovieNotFound)
	})
}

func (s *MovieJSONFileSuite) TestAddVotes(t provider.T) {
	t.Run("Should change the stored count and never go below zero", func(t provider.T) {
		r := initResources(t)
		defer os.RemoveAll(r.dir)

		require.NoError(t, r.repository.Store(r.ctx, validMovie(1)))

		n, err := r.repository.AddVotes(r.ctx, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = r.repository.AddVotes(r.ctx, 1, -1)
		assert.NoError(t, err)
		assert.Equal(t, 0, n)

		n, err = r.repository.AddVotes(r.ctx, 1, -1)
		assert.NoError(t, err)
		assert.Equal(t, 0, n)

		_, err = r.repository.AddVotes(r.ctx, 99, 1)
		assert.ErrorIs(t, err, model.ErrMovieNotFound)
	})
}

func (s *MovieJSONFileSuite) TestReplaceAll(t provider.T) {
	r := initResources(t)
	defer os.RemoveAll(r.dir)

	require.NoError(t, r.repository.Store(r.ctx, validMovie(1)))
	require.NoError(t, r.repository.ReplaceAll(r.ctx, []model.Movie{validMovie(5), validMovie(6)}))

	movies, err := r.repository.Load(r.ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
	assert.Equal(t, int64(5), movies[0].ID)

	require.NoError(t, r.repository.ReplaceAll(r.ctx, nil))
	movies, err = r.repository.Load(r.ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestMovieJSONFileSuite(t *testing.T) {
	suite.RunSuite(t, new(MovieJSONFileSuite))
}
