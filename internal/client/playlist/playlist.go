// Package client_playlist manages the signed-in user's playlist, kept in local storage.
package client_playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	client_notify "github.com/rconjoe/flickpicker/internal/client/notify"
	client_storage "github.com/rconjoe/flickpicker/internal/client/storage"
	client_store "github.com/rconjoe/flickpicker/internal/client/store"
	"github.com/rconjoe/flickpicker/internal/model"
)

var (
	ErrAlreadyInPlaylist = errors.New("movie already in playlist")
	ErrMalformedPlaylist = errors.New("malformed playlist")
	ErrNotInPlaylist     = errors.New("movie not in playlist")
)

type Manager struct {
	store    *client_store.Store
	local    client_storage.KV
	notifier client_notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func New(store *client_store.Store, local client_storage.KV, notifier client_notify.Notifier, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		local:    local,
		notifier: notifier,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load restores the persisted playlist into the store. A malformed payload
// leaves the playlist empty.
func (m *Manager) Load(ctx context.Context) ([]model.PlaylistItem, error) {
	raw, ok, err := m.local.Get(ctx, client_storage.KeyPlaylist)
	if err != nil {
		return nil, err
	}
	if !ok {
		m.store.SetPlaylist(nil)
		return []model.PlaylistItem{}, nil
	}

	var items []model.PlaylistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		m.store.SetPlaylist(nil)
		m.logger.Warn("discarding stored playlist", slog.String("error", err.Error()))
		return []model.PlaylistItem{}, fmt.Errorf("%w: %w", ErrMalformedPlaylist, err)
	}
	for _, it := range items {
		if it.ID == 0 {
			m.store.SetPlaylist(nil)
			return []model.PlaylistItem{}, fmt.Errorf("%w: item without id", ErrMalformedPlaylist)
		}
	}

	m.store.SetPlaylist(items)
	return m.store.Playlist(), nil
}

// Add appends a movie once. Adding a movie already present changes nothing.
func (m *Manager) Add(ctx context.Context, movieID int64, title, poster string) error {
	if _, ok := m.store.User(); !ok {
		m.notifier.Notify(client_notify.LevelWarning, "Please login to add movies to your playlist")
		return model.ErrNotAuthenticated
	}

	items := m.store.Playlist()
	if model.PlaylistContains(items, movieID) {
		m.notifier.Notify(client_notify.LevelInfo, "Movie already in playlist")
		return ErrAlreadyInPlaylist
	}

	items = append(items, model.PlaylistItem{
		ID:      movieID,
		Title:   title,
		Poster:  poster,
		AddedAt: m.now().UTC(),
	})
	if err := m.save(ctx, items); err != nil {
		m.notifier.Notify(client_notify.LevelError, "Failed to add movie to playlist")
		return err
	}

	m.notifier.Notify(client_notify.LevelSuccess, "Added to playlist")
	return nil
}

func (m *Manager) Remove(ctx context.Context, movieID int64) error {
	items := m.store.Playlist()
	kept := slices.DeleteFunc(items, func(it model.PlaylistItem) bool { return it.ID == movieID })
	if len(kept) == len(m.store.Playlist()) {
		return ErrNotInPlaylist
	}

	if err := m.save(ctx, kept); err != nil {
		m.notifier.Notify(client_notify.LevelError, "Failed to remove movie from playlist")
		return err
	}
	m.notifier.Notify(client_notify.LevelSuccess, "Removed from playlist")
	return nil
}

func (m *Manager) save(ctx context.Context, items []model.PlaylistItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := m.local.Set(ctx, client_storage.KeyPlaylist, string(data)); err != nil {
		return fmt.Errorf("persist playlist: %w", err)
	}
	m.store.SetPlaylist(items)
	return nil
}
