// Package client_store is the single owner of client state: the catalog, the
// filtered and sorted view of it, the signed-in user, the playlist and the UI
// settings. Mutators receive the store explicitly and listeners subscribe to
// changes.
package client_store

import (
	"slices"
	"sync"

	"github.com/rconjoe/flickpicker/internal/model"
	"github.com/rconjoe/flickpicker/internal/service/pipeline"
)

type Change int

const (
	ChangeCatalog Change = iota
	ChangeView
	ChangeUser
	ChangePlaylist
	ChangeSettings
)

func (c Change) String() string {
	switch c {
	case ChangeCatalog:
		return "catalog"
	case ChangeView:
		return "view"
	case ChangeUser:
		return "user"
	case ChangePlaylist:
		return "playlist"
	case ChangeSettings:
		return "settings"
	}
	return "unknown"
}

type Listener func(Change)

type Store struct {
	mu sync.RWMutex

	catalog  []model.Movie
	view     []model.Movie
	criteria model.Criteria
	sortKey  string
	user     *model.User
	playlist []model.PlaylistItem
	settings model.Settings

	listeners map[int]Listener
	nextID    int
}

func New() *Store {
	return &Store{
		catalog:   []model.Movie{},
		view:      []model.Movie{},
		playlist:  []model.PlaylistItem{},
		settings:  model.DefaultSettings(),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l for every change. The returned func removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(changes ...Change) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, c := range changes {
		for _, l := range listeners {
			l(c)
		}
	}
}

func (s *Store) Catalog() []model.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.catalog)
}

func (s *Store) View() []model.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.view)
}

func (s *Store) Query() (model.Criteria, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria, s.sortKey
}

func (s *Store) Movie(id int64) (model.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := model.FindByID(s.catalog, id)
	if !ok {
		return model.Movie{}, false
	}
	return s.catalog[i], true
}

func (s *Store) SetCatalog(movies []model.Movie) {
	s.mu.Lock()
	s.catalog = slices.Clone(movies)
	if s.catalog == nil {
		s.catalog = []model.Movie{}
	}
	s.refreshView()
	s.mu.Unlock()

	s.notify(ChangeCatalog, ChangeView)
}

// SetQuery replaces the active filter and sort and recomputes the view.
func (s *Store) SetQuery(c model.Criteria, sortKey string) {
	s.mu.Lock()
	s.criteria = c
	s.sortKey = sortKey
	s.refreshView()
	s.mu.Unlock()

	s.notify(ChangeView)
}

// SetVoteCount updates one movie in place and returns its previous count.
func (s *Store) SetVoteCount(id int64, count int) (int, bool) {
	s.mu.Lock()
	i, ok := model.FindByID(s.catalog, id)
	if !ok {
		s.mu.Unlock()
		return 0, false
	}
	prev := s.catalog[i].VoteCount
	s.catalog[i].VoteCount = count
	if j, ok := model.FindByID(s.view, id); ok {
		s.view[j].VoteCount = count
	}
	s.mu.Unlock()

	s.notify(ChangeCatalog, ChangeView)
	return prev, true
}

// UpsertMovie replaces the movie with the same id or appends it.
func (s *Store) UpsertMovie(m model.Movie) {
	s.mu.Lock()
	if i, ok := model.FindByID(s.catalog, m.ID); ok {
		s.catalog[i] = m
	} else {
		s.catalog = append(s.catalog, m)
	}
	s.refreshView()
	s.mu.Unlock()

	s.notify(ChangeCatalog, ChangeView)
}

func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// SetUser replaces the session user; nil signs out.
func (s *Store) SetUser(u *model.User) {
	s.mu.Lock()
	if u == nil {
		s.user = nil
	} else {
		cp := *u
		s.user = &cp
	}
	s.mu.Unlock()

	s.notify(ChangeUser)
}

func (s *Store) Playlist() []model.PlaylistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.playlist)
}

func (s *Store) SetPlaylist(items []model.PlaylistItem) {
	s.mu.Lock()
	s.playlist = slices.Clone(items)
	if s.playlist == nil {
		s.playlist = []model.PlaylistItem{}
	}
	s.mu.Unlock()

	s.notify(ChangePlaylist)
}

func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) SetSettings(settings model.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.notify(ChangeSettings)
}

// refreshView must be called with mu held.
func (s *Store) refreshView() {
	s.view = pipeline.Sort(pipeline.Filter(s.catalog, s.criteria), s.sortKey)
}
