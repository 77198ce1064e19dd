package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/stylesense/stylesense/internal/model"
)

// Wardrobe store errors.
var (
	// ErrDuplicateItem is returned by Add when an item with the same id is
	// already in the collection.
	ErrDuplicateItem = errors.New("item with this id already exists")

	// ErrStorageCorrupt is returned when a persisted wardrobe document
	// cannot be parsed. The in-memory collection is reset to empty; callers
	// should surface a warning and carry on.
	ErrStorageCorrupt = errors.New("persisted wardrobe data is corrupt")

	// ErrNoActiveUser is returned by mutations before any user has been
	// loaded. The collection must be fully loaded before it accepts writes.
	ErrNoActiveUser = errors.New("no active user loaded")
)

// Wardrobe owns the authoritative in-memory collection for the active user
// and writes every mutation through to durable storage before returning.
// After every Add or Remove completes, the persisted document under the
// active user's key equals the in-memory collection.
type Wardrobe struct {
	db *sql.DB

	mu      sync.Mutex
	userKey string
	items   []model.WardrobeItem // newest first
}

// NewWardrobe creates an empty store with no active user.
func NewWardrobe(db *sql.DB) *Wardrobe {
	return &Wardrobe{db: db}
}

// SwitchUser discards the current in-memory collection and loads the
// collection persisted for userKey. The outgoing user's data is never
// written under the incoming key. A missing document yields an empty
// collection; an unparsable one yields ErrStorageCorrupt with the
// collection reset to empty, so the caller can warn and continue.
func (w *Wardrobe) SwitchUser(ctx context.Context, userKey string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.userKey = userKey
	w.items = nil

	raw, ok, err := KVGet(ctx, w.db, WardrobeKey(userKey))
	if err != nil {
		return fmt.Errorf("loading wardrobe for %q: %w", userKey, err)
	}
	if !ok {
		return nil
	}

	var items []model.WardrobeItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}

	w.items = items
	return nil
}

// Clear drops the in-memory collection and active user without touching
// durable storage. Used on logout: persisted data stays under the prior key.
func (w *Wardrobe) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.userKey = ""
	w.items = nil
}

// ActiveUser returns the key of the currently loaded user, or "".
func (w *Wardrobe) ActiveUser() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.userKey
}

// Items returns a snapshot of the collection, newest first.
func (w *Wardrobe) Items() []model.WardrobeItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	snapshot := make([]model.WardrobeItem, len(w.items))
	copy(snapshot, w.items)
	return snapshot
}

// Get returns the item with the given id, or nil if not present.
func (w *Wardrobe) Get(id string) *model.WardrobeItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.items {
		if w.items[i].ID == id {
			item := w.items[i]
			return &item
		}
	}
	return nil
}

// Add prepends item to the collection (newest-first ordering is an
// observable contract) and persists synchronously before returning. A
// duplicate id fails with ErrDuplicateItem and leaves the collection
// unchanged. If persisting fails, the in-memory prepend is rolled back so
// memory and storage stay consistent.
func (w *Wardrobe) Add(ctx context.Context, item model.WardrobeItem) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.userKey == "" {
		return ErrNoActiveUser
	}
	for i := range w.items {
		if w.items[i].ID == item.ID {
			return fmt.Errorf("adding item %q: %w", item.ID, ErrDuplicateItem)
		}
	}

	prev := w.items
	w.items = append([]model.WardrobeItem{item}, w.items...)
	if err := w.persist(ctx); err != nil {
		w.items = prev
		return fmt.Errorf("persisting after add: %w", err)
	}
	return nil
}

// Remove deletes the item with the given id if present and persists the
// result. Removing a missing id is a no-op, not an error.
func (w *Wardrobe) Remove(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.userKey == "" {
		return ErrNoActiveUser
	}

	idx := -1
	for i := range w.items {
		if w.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	prev := w.items
	w.items = append(append([]model.WardrobeItem{}, w.items[:idx]...), w.items[idx+1:]...)
	if err := w.persist(ctx); err != nil {
		w.items = prev
		return fmt.Errorf("persisting after remove: %w", err)
	}
	return nil
}

// persist writes the full collection under the active user's key. Caller
// must hold the mutex.
func (w *Wardrobe) persist(ctx context.Context) error {
	items := w.items
	if items == nil {
		items = []model.WardrobeItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding wardrobe: %w", err)
	}
	return KVSet(ctx, w.db, WardrobeKey(w.userKey), string(raw))
}
