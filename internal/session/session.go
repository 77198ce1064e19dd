// Package session owns the active identity: unauthenticated ->
// authenticated -> unauthenticated. Becoming authenticated switches the
// wardrobe store to the new user's collection; becoming unauthenticated
// clears the in-memory collection while persisted data stays untouched
// under the prior email.
//
// No credential verification happens here: any non-empty name/email is
// accepted as-is (demo-mode authentication is an explicit non-goal of the
// core).
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/stylesense/stylesense/internal/auth"
	"github.com/stylesense/stylesense/internal/model"
	"github.com/stylesense/stylesense/internal/store"
)

// ErrInvalidIdentity is returned by Login when the name or email is empty.
var ErrInvalidIdentity = errors.New("name and email are required")

// Manager owns the current identity and drives wardrobe load/save on
// identity changes.
type Manager struct {
	db       *sql.DB
	wardrobe *store.Wardrobe
	secret   string

	mu   sync.Mutex
	user *model.User
}

// NewManager creates a manager in the unauthenticated state.
func NewManager(db *sql.DB, wardrobe *store.Wardrobe, jwtSecret string) *Manager {
	return &Manager{db: db, wardrobe: wardrobe, secret: jwtSecret}
}

// Login establishes the given identity, persists it under the currentUser
// key, switches the wardrobe store to the user's collection, and returns a
// signed API token. A corrupt persisted wardrobe is logged and treated as
// empty rather than failing the login.
func (m *Manager) Login(ctx context.Context, name, email string) (string, *model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return "", nil, ErrInvalidIdentity
	}

	user := &model.User{Name: name, Email: email}
	raw, err := json.Marshal(user)
	if err != nil {
		return "", nil, fmt.Errorf("encoding user: %w", err)
	}
	if err := store.KVSet(ctx, m.db, store.CurrentUserKey, string(raw)); err != nil {
		return "", nil, fmt.Errorf("persisting current user: %w", err)
	}

	if err := m.wardrobe.SwitchUser(ctx, email); err != nil {
		if !errors.Is(err, store.ErrStorageCorrupt) {
			return "", nil, fmt.Errorf("switching wardrobe: %w", err)
		}
		slog.Warn("persisted wardrobe is corrupt, starting empty", "user", email, "error", err)
	}

	token, err := auth.GenerateToken(m.secret, name, email)
	if err != nil {
		return "", nil, fmt.Errorf("generating token: %w", err)
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	slog.Info("user logged in", "user", email)
	return token, user, nil
}

// Logout clears the active identity and the in-memory wardrobe. The
// persisted collection remains under the prior user's key.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	user := m.user
	m.user = nil
	m.mu.Unlock()

	m.wardrobe.Clear()
	if err := store.KVDelete(ctx, m.db, store.CurrentUserKey); err != nil {
		return fmt.Errorf("clearing current user: %w", err)
	}

	if user != nil {
		slog.Info("user logged out", "user", user.Email)
	}
	return nil
}

// Restore reloads a previously persisted identity at startup. Returns nil
// without error when no identity was persisted. A corrupt record is
// discarded and reported via ErrStorageCorrupt so the caller can warn.
func (m *Manager) Restore(ctx context.Context) (*model.User, error) {
	raw, ok, err := store.KVGet(ctx, m.db, store.CurrentUserKey)
	if err != nil {
		return nil, fmt.Errorf("reading current user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		_ = store.KVDelete(ctx, m.db, store.CurrentUserKey)
		return nil, fmt.Errorf("%w: %v", store.ErrStorageCorrupt, err)
	}

	if err := m.wardrobe.SwitchUser(ctx, user.Email); err != nil {
		if !errors.Is(err, store.ErrStorageCorrupt) {
			return nil, fmt.Errorf("switching wardrobe: %w", err)
		}
		slog.Warn("persisted wardrobe is corrupt, starting empty", "user", user.Email, "error", err)
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	return &user, nil
}

// Current returns the active identity, or nil when unauthenticated.
func (m *Manager) Current() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}
