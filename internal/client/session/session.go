// Package client_session is a mock sign-in against a fixed user table.
// It proves nothing about identity; it only gates the client-side features.
package client_session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	client_storage "github.com/rconjoe/flickpicker/internal/client/storage"
	client_store "github.com/rconjoe/flickpicker/internal/client/store"
	"github.com/rconjoe/flickpicker/internal/model"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type account struct {
	hash []byte
	role string
}

// Storage groups the three stores a session is spread over.
type Storage struct {
	Local   client_storage.KV
	Session client_storage.KV
	Cookie  client_storage.KV
}

type Manager struct {
	store   *client_store.Store
	storage Storage
	users   map[string]account
	cost    int
	logger  *slog.Logger
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithCost sets the bcrypt cost used to hash the built-in users.
func WithCost(cost int) Option {
	return func(m *Manager) {
		m.cost = cost
	}
}

func New(store *client_store.Store, storage Storage, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:   store,
		storage: storage,
		users:   make(map[string]account),
		cost:    bcrypt.DefaultCost,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, u := range []struct{ name, password, role string }{
		{"user1", "pass1", model.RoleUser},
		{"admin", "admin123", model.RoleAdmin},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), m.cost)
		if err != nil {
			return nil, fmt.Errorf("hash %s: %w", u.name, err)
		}
		m.users[u.name] = account{hash: hash, role: u.role}
	}
	return m, nil
}

func (m *Manager) Login(ctx context.Context, username, password string) (model.User, error) {
	acc, ok := m.users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(m.users["user1"].hash, []byte(password))
		return model.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}

	user := model.User{Username: username, Role: acc.role}
	data, err := json.Marshal(user)
	if err != nil {
		return model.User{}, err
	}
	if err := m.storage.Session.Set(ctx, client_storage.KeyUser, string(data)); err != nil {
		return model.User{}, fmt.Errorf("persist session: %w", err)
	}
	if err := m.storage.Local.Set(ctx, client_storage.KeyUserRole, user.Role); err != nil {
		return model.User{}, fmt.Errorf("persist role: %w", err)
	}
	if m.storage.Cookie != nil {
		if err := m.storage.Cookie.Set(ctx, client_storage.KeyUserRole, user.Role); err != nil {
			m.logger.Warn("failed to set role cookie", slog.String("error", err.Error()))
		}
	}

	m.store.SetUser(&user)
	m.logger.Info("signed in", slog.String("user", username), slog.String("role", user.Role))
	return user, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	var errs []error
	errs = append(errs, m.storage.Session.Delete(ctx, client_storage.KeyUser))
	errs = append(errs, m.storage.Local.Delete(ctx, client_storage.KeyUserRole))
	if m.storage.Cookie != nil {
		errs = append(errs, m.storage.Cookie.Delete(ctx, client_storage.KeyUserRole))
	}
	m.store.SetUser(nil)
	return errors.Join(errs...)
}

// Restore brings back a session saved by Login. A missing role is taken from
// local storage, then from the cookie.
func (m *Manager) Restore(ctx context.Context) (model.User, bool, error) {
	raw, ok, err := m.storage.Session.Get(ctx, client_storage.KeyUser)
	if err != nil || !ok {
		return model.User{}, false, err
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.Username == "" {
		_ = m.storage.Session.Delete(ctx, client_storage.KeyUser)
		return model.User{}, false, nil
	}

	if user.Role == "" {
		user.Role = m.storedRole(ctx)
	}
	m.store.SetUser(&user)
	return user, true, nil
}

func (m *Manager) storedRole(ctx context.Context) string {
	for _, kv := range []client_storage.KV{m.storage.Local, m.storage.Cookie} {
		if kv == nil {
			continue
		}
		if role, ok, err := kv.Get(ctx, client_storage.KeyUserRole); err == nil && ok && role != "" {
			return role
		}
	}
	return model.RoleUser
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.store.User()
	return ok
}

// IsAuthorized reports whether the current user holds role. Admins hold every role.
func (m *Manager) IsAuthorized(role string) bool {
	user, ok := m.store.User()
	if !ok {
		return false
	}
	return user.Role == role || user.Role == model.RoleAdmin
}
