// Package client_sync queues movies created offline and pushes them to the
// server when a sync is requested.
package client_sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	client_api "github.com/rconjoe/flickpicker/internal/client/api"
	"github.com/rconjoe/flickpicker/internal/model"
)

type Records interface {
	Put(ctx context.Context, m model.Movie, synced bool) error
	Unsynced(ctx context.Context) ([]model.Movie, error)
	MarkSynced(ctx context.Context, ID int64) error
}

type API interface {
	SaveMovie(ctx context.Context, m model.Movie) (model.Movie, error)
}

type Result struct {
	Synced int
	Failed int
}

type Syncer struct {
	records Records
	api     API
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Syncer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

func New(records Records, api API, opts ...Option) *Syncer {
	s := &Syncer{
		records: records,
		api:     api,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Queue stores m as pending. A zero id becomes the current Unix millisecond.
func (s *Syncer) Queue(ctx context.Context, m model.Movie) (model.Movie, error) {
	if m.ID == 0 {
		m.ID = s.now().UnixMilli()
	}
	if err := s.records.Put(ctx, m, false); err != nil {
		return model.Movie{}, fmt.Errorf("queue movie: %w", err)
	}
	return m, nil
}

// Sync posts every pending record once. Failed records stay pending for the
// next call; a conflict means the server already has the movie.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	pending, err := s.records.Unsynced(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list pending records: %w", err)
	}

	var res Result
	for _, m := range pending {
		_, err := s.api.SaveMovie(ctx, m)

		var se *client_api.StatusError
		if err != nil && !(errors.As(err, &se) && se.Code == http.StatusConflict) {
			res.Failed++
			s.logger.Warn("failed to sync movie",
				slog.Int64("movie_id", m.ID),
				slog.String("error", err.Error()))
			continue
		}

		if err := s.records.MarkSynced(ctx, m.ID); err != nil {
			res.Failed++
			s.logger.Error("failed to mark movie synced",
				slog.Int64("movie_id", m.ID),
				slog.String("error", err.Error()))
			continue
		}
		res.Synced++
	}

	s.logger.Info("sync finished", slog.Int("synced", res.Synced), slog.Int("failed", res.Failed))
	return res, nil
}
