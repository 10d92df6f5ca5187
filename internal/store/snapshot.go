package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lumilearn/lumi/internal/session"
)

// ErrCorruptSnapshot indicates the stored payload could not be decoded.
// A corrupt snapshot must never be retried; callers are expected to
// Clear the store after seeing this error.
var ErrCorruptSnapshot = errors.New("saved session payload is corrupt")

// SnapshotStore persists at most one saved session snapshot.
type SnapshotStore interface {
	// Exists reports whether a snapshot is present without decoding it.
	Exists(ctx context.Context) (bool, error)

	// Load returns the stored snapshot, or (nil, nil) when absent.
	// Returns an error wrapping ErrCorruptSnapshot when the payload
	// cannot be decoded.
	Load(ctx context.Context) (*session.Snapshot, error)

	// Save overwrites the single snapshot slot.
	Save(ctx context.Context, snap *session.Snapshot) error

	// Clear removes the snapshot. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}

// snapshotStore implements SnapshotStore on the saved_session table.
type snapshotStore struct {
	db *sql.DB
}

func (s *snapshotStore) Exists(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_session WHERE id = 1`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query saved session: %w", err)
	}
	return n > 0, nil
}

func (s *snapshotStore) Load(ctx context.Context) (*session.Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM saved_session WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load saved session: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Session == nil || !snap.Style.Valid() {
		return nil, fmt.Errorf("%w: missing session or style", ErrCorruptSnapshot)
	}
	return &snap, nil
}

func (s *snapshotStore) Save(ctx context.Context, snap *session.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal saved session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO saved_session (id, payload, updated_at) VALUES (1, ?, ?)
ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *snapshotStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear saved session: %w", err)
	}
	return nil
}
