// Package client_vote applies votes optimistically and reconciles them with
// the server.
package client_vote

import (
	"context"
	"fmt"
	"log/slog"

	client_notify "github.com/rconjoe/flickpicker/internal/client/notify"
	client_store "github.com/rconjoe/flickpicker/internal/client/store"
	"github.com/rconjoe/flickpicker/internal/model"
)

type API interface {
	UpdateVote(ctx context.Context, movieID int64, voteType model.VoteType, userID string) (int, error)
}

type Voter struct {
	store    *client_store.Store
	api      API
	notifier client_notify.Notifier
	logger   *slog.Logger
}

type Option func(*Voter)

func WithLogger(logger *slog.Logger) Option {
	return func(v *Voter) {
		v.logger = logger
	}
}

func New(store *client_store.Store, api API, notifier client_notify.Notifier, opts ...Option) *Voter {
	v := &Voter{
		store:    store,
		api:      api,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Vote bumps the local count right away, then adopts the server's count. On
// failure the local count is restored.
func (v *Voter) Vote(ctx context.Context, movieID int64, direction model.VoteType) (int, error) {
	user, ok := v.store.User()
	if !ok {
		v.notifier.Notify(client_notify.LevelWarning, "Please login to vote")
		return 0, model.ErrNotAuthenticated
	}
	if _, err := model.ParseVoteType(string(direction)); err != nil {
		return 0, err
	}

	movie, ok := v.store.Movie(movieID)
	if !ok {
		v.notifier.Notify(client_notify.LevelError, "Movie not found")
		return 0, model.ErrMovieNotFound
	}

	prev := movie.VoteCount
	v.store.SetVoteCount(movieID, max(0, prev+direction.Delta()))

	count, err := v.api.UpdateVote(ctx, movieID, direction, user.Username)
	if err != nil {
		v.store.SetVoteCount(movieID, prev)
		v.logger.Error("failed to update vote",
			slog.Int64("movie_id", movieID),
			slog.String("error", err.Error()))
		v.notifier.Notify(client_notify.LevelError, "Failed to update vote")
		return prev, fmt.Errorf("update vote: %w", err)
	}

	v.store.SetVoteCount(movieID, count)
	v.notifier.Notify(client_notify.LevelSuccess, "Vote recorded")
	return count, nil
}
