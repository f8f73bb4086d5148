// Package client_loader fetches the catalog from the server and falls back on
// locally stored copies when the network is unavailable.
package client_loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	client_storage "github.com/rconjoe/flickpicker/internal/client/storage"
	"github.com/rconjoe/flickpicker/internal/model"
)

var ErrCatalogUnavailable = errors.New("catalog unavailable from network and every local source")

type Fetcher interface {
	Movies(ctx context.Context) ([]model.Movie, error)
}

// Reader is one fallback source. ok is false when the source holds nothing.
type Reader interface {
	Name() string
	Read(ctx context.Context) (movies []model.Movie, ok bool, err error)
}

type Writer interface {
	Name() string
	Write(ctx context.Context, movies []model.Movie) error
}

type Loader struct {
	fetcher   Fetcher
	mirrors   []Writer
	fallbacks []Reader
	logger    *slog.Logger
}

type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMirrors sets where a fetched catalog is copied.
func WithMirrors(w ...Writer) Option {
	return func(l *Loader) {
		l.mirrors = w
	}
}

// WithFallbacks sets the sources tried in order when fetching fails.
func WithFallbacks(r ...Reader) Option {
	return func(l *Loader) {
		l.fallbacks = r
	}
}

func New(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadCatalog returns the server catalog, or the first non-empty fallback.
// When everything fails it returns an empty catalog and ErrCatalogUnavailable.
func (l *Loader) LoadCatalog(ctx context.Context) ([]model.Movie, error) {
	movies, err := l.fetcher.Movies(ctx)
	if err == nil {
		l.mirror(ctx, movies)
		return movies, nil
	}
	l.logger.Warn("failed to fetch catalog, trying local sources", slog.String("error", err.Error()))

	for _, r := range l.fallbacks {
		movies, ok, rerr := r.Read(ctx)
		if rerr != nil {
			l.logger.Warn("fallback source unreadable",
				slog.String("source", r.Name()),
				slog.String("error", rerr.Error()))
			continue
		}
		if !ok || len(movies) == 0 {
			continue
		}
		l.logger.Info("catalog loaded from fallback",
			slog.String("source", r.Name()),
			slog.Int("movies", len(movies)))
		return movies, nil
	}

	return []model.Movie{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}

func (l *Loader) mirror(ctx context.Context, movies []model.Movie) {
	for _, w := range l.mirrors {
		if err := w.Write(ctx, movies); err != nil {
			l.logger.Warn("failed to mirror catalog",
				slog.String("target", w.Name()),
				slog.String("error", err.Error()))
		}
	}
}

// KVSource keeps the catalog as a JSON array under one key of a string store.
type KVSource struct {
	name string
	kv   client_storage.KV
	key  string
}

func NewKVSource(name string, kv client_storage.KV) *KVSource {
	return &KVSource{name: name, kv: kv, key: client_storage.KeyMovieList}
}

func (s *KVSource) Name() string {
	return s.name
}

func (s *KVSource) Read(ctx context.Context) ([]model.Movie, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return nil, false, err
	}
	var movies []model.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", s.name, err)
	}
	return movies, true, nil
}

func (s *KVSource) Write(ctx context.Context, movies []model.Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, string(data))
}

type RecordStore interface {
	All(ctx context.Context) ([]model.Movie, error)
	PutAll(ctx context.Context, movies []model.Movie) error
}

// RecordSource adapts the indexed record store.
type RecordSource struct {
	store RecordStore
}

func NewRecordSource(store RecordStore) *RecordSource {
	return &RecordSource{store: store}
}

func (s *RecordSource) Name() string {
	return "records"
}

func (s *RecordSource) Read(ctx context.Context) ([]model.Movie, bool, error) {
	movies, err := s.store.All(ctx)
	if err != nil {
		return nil, false, err
	}
	return movies, len(movies) > 0, nil
}

func (s *RecordSource) Write(ctx context.Context, movies []model.Movie) error {
	return s.store.PutAll(ctx, movies)
}
