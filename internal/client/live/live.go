// Package client_live keeps the client store current with server events.
package client_live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	client_store "github.com/rconjoe/flickpicker/internal/client/store"
	"github.com/rconjoe/flickpicker/internal/model"
)

const handshakeTimeout = 10 * time.Second

type Subscriber struct {
	url    string
	store  *client_store.Store
	dialer *websocket.Dialer
	logger *slog.Logger
}

type Option func(*Subscriber)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Subscriber) {
		s.logger = logger
	}
}

func New(url string, store *client_store.Store, opts ...Option) *Subscriber {
	s := &Subscriber{
		url:    url,
		store:  store,
		dialer: &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run applies events until ctx is done or the connection drops. onEvent, if
// set, sees every event after it has been applied.
func (s *Subscriber) Run(ctx context.Context, onEvent func(model.Event)) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}()

	for {
		var e model.Event
		if err := conn.ReadJSON(&e); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}

		if !Apply(s.store, e) {
			s.logger.Debug("ignored event", slog.String("type", e.Type))
		}
		if onEvent != nil {
			onEvent(e)
		}
	}
}

// Apply folds one server event into the store. It reports whether the event
// changed anything. A replaced catalog is left to the caller to reload.
func Apply(store *client_store.Store, e model.Event) bool {
	switch e.Type {
	case model.EventVoteUpdated:
		_, ok := store.SetVoteCount(e.MovieID, e.Votes)
		return ok
	case model.EventMovieSaved:
		if e.Movie == nil {
			return false
		}
		store.UpsertMovie(*e.Movie)
		return true
	}
	return false
}
