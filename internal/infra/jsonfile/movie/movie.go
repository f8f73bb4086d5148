package infra_jsonfile_movie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rconjoe/flickpicker/internal/model"
)

// Repository keeps the whole catalog in one JSON array file. Every write
// rewrites the file; the mutex serializes read-modify-write cycles inside
// this process only.
type Repository struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Repository {
	return &Repository{path: path}
}

func (r *Repository) Load(ctx context.Context) ([]model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

func (r *Repository) LoadByID(ctx context.Context, ID int64) (model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies, err := r.read()
	if err != nil {
		return model.Movie{}, err
	}
	i, ok := model.FindByID(movies, ID)
	if !ok {
		return model.Movie{}, model.ErrMovieNotFound
	}
	return movies[i], nil
}

func (r *Repository) Store(ctx context.Context, m model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := model.FindByID(movies, m.ID); ok {
		return model.ErrDuplicateMovie
	}

	return r.write(append(movies, m))
}

func (r *Repository) AddVotes(ctx context.Context, ID int64, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movies, err := r.read()
	if err != nil {
		return 0, err
	}
	i, ok := model.FindByID(movies, ID)
	if !ok {
		return 0, model.ErrMovieNotFound
	}

	movies[i].VoteCount = max(0, movies[i].VoteCount+delta)
	if err := r.write(movies); err != nil {
		return 0, err
	}
	return movies[i].VoteCount, nil
}

func (r *Repository) ReplaceAll(ctx context.Context, movies []model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(movies)
}

func (r *Repository) read() ([]model.Movie, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Movie{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	if len(data) == 0 {
		return []model.Movie{}, nil
	}

	var movies []model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

func (r *Repository) write(movies []model.Movie) error {
	if movies == nil {
		movies = []model.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".movieList-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
