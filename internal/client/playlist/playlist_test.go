package client_playlist

import (
	"context"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client_notify "github.com/rconjoe/flickpicker/internal/client/notify"
	client_storage "github.com/rconjoe/flickpicker/internal/client/storage"
	client_store "github.com/rconjoe/flickpicker/internal/client/store"
	"github.com/rconjoe/flickpicker/internal/model"
)

type PlaylistSuite struct {
	suite.Suite

	store    *client_store.Store
	local    *client_storage.MemoryKV
	notifier *client_notify.Recorder
	manager  *Manager
	ctx      context.Context
	now      time.Time
}

func (s *PlaylistSuite) BeforeEach(t provider.T) {
	s.store = client_store.New()
	s.store.SetUser(&model.User{Username: "user1", Role: model.RoleUser})
	s.local = client_storage.NewMemoryKV()
	s.notifier = &client_notify.Recorder{}
	s.now = time.Date(2024, 5, 4, 20, 0, 0, 0, time.UTC)
	s.manager = New(s.store, s.local, s.notifier, WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *PlaylistSuite) TestAdd(t provider.T) {
	t.Run("Should persist new item", func(t provider.T) {
		require.NoError(t, s.manager.Add(s.ctx, 1, "Inception", "https://img/inception.jpg"))

		items := s.store.Playlist()
		require.Len(t, items, 1)
		assert.Equal(t, s.now, items[0].AddedAt)

		reloaded := New(client_store.New(), s.local, s.notifier)
		got, err := reloaded.Load(s.ctx)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("Should be idempotent on id", func(t provider.T) {
		err := s.manager.Add(s.ctx, 1, "Inception", "")

		assert.ErrorIs(t, err, ErrAlreadyInPlaylist)
		assert.Len(t, s.store.Playlist(), 1)
		last, _ := s.notifier.Last()
		assert.Equal(t, "Movie already in playlist", last.Message)
	})

	t.Run("Should require session", func(t provider.T) {
		s.store.SetUser(nil)

		err := s.manager.Add(s.ctx, 2, "Heat", "")

		assert.ErrorIs(t, err, model.ErrNotAuthenticated)
		assert.Len(t, s.store.Playlist(), 1)
	})
}

func (s *PlaylistSuite) TestRemove(t provider.T) {
	require.NoError(t, s.manager.Add(s.ctx, 1, "Inception", ""))
	require.NoError(t, s.manager.Add(s.ctx, 2, "Heat", ""))

	require.NoError(t, s.manager.Remove(s.ctx, 1))

	items := s.store.Playlist()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
	assert.ErrorIs(t, s.manager.Remove(s.ctx, 1), ErrNotInPlaylist)

	raw, _, _ := s.local.Get(s.ctx, client_storage.KeyPlaylist)
	assert.NotContains(t, raw, "Inception")
}

func (s *PlaylistSuite) TestLoad(t provider.T) {
	t.Run("Should start empty without stored list", func(t provider.T) {
		items, err := s.manager.Load(s.ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Should reject malformed payload", func(t provider.T) {
		require.NoError(t, s.local.Set(s.ctx, client_storage.KeyPlaylist, `{"id":1}`))

		items, err := s.manager.Load(s.ctx)

		assert.ErrorIs(t, err, ErrMalformedPlaylist)
		assert.Empty(t, items)
		assert.Empty(t, s.store.Playlist())
	})

	t.Run("Should reject items without id", func(t provider.T) {
		require.NoError(t, s.local.Set(s.ctx, client_storage.KeyPlaylist, `[{"title":"x"}]`))

		_, err := s.manager.Load(s.ctx)

		assert.ErrorIs(t, err, ErrMalformedPlaylist)
	})
}

func TestPlaylistSuite(t *testing.T) {
	suite.RunSuite(t, new(PlaylistSuite))
}
