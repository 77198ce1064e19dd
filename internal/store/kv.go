package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// Storage keys.
const (
	// CurrentUserKey holds the JSON-serialized active identity.
	CurrentUserKey = "currentUser"

	wardrobeKeyPrefix = "wardrobe:"
	imageKeyPrefix    = "image:"
)

// WardrobeKey derives the storage key for a user's wardrobe collection.
func WardrobeKey(email string) string {
	return wardrobeKeyPrefix + email
}

// ImageKey derives the storage key for an item's processed photo.
func ImageKey(itemID string) string {
	return imageKeyPrefix + itemID
}

// KVGet reads the value stored under key. The second return value reports
// whether the key exists.
func KVGet(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

// KVSet stores value under key, replacing any existing value.
func KVSet(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// KVDelete removes key. Deleting a missing key is a no-op.
func KVDelete(ctx context.Context, db *sql.DB, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// JWTSecret retrieves the token signing secret. If no secret exists, it
// generates one, stores it, and returns it. Uses INSERT OR IGNORE +
// re-SELECT to avoid TOCTOU race on concurrent startup.
func JWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO kv (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}
