// Package repository defines the snapshot store interface and errors.
//
// The store owns the single persisted league snapshot. Every mutation
// bumps a monotonic version; readers get the version with the data so
// the app layer can memoize derived results against it. All data
// passes through model.NormalizeSnapshot on the way in and out, so
// the engine only ever sees well-formed, freshly copied values.
package repository

import (
	"context"

	"github.com/goldinfc/scorebook/internal/domain/model"
)

// Store provides read/write access to the league snapshot.
type Store interface {
	// Snapshot returns a normalized copy of the current state and its
	// version.
	Snapshot(ctx context.Context) (model.Snapshot, uint64, error)

	// ReplaceSnapshot swaps in a whole new state, e.g. an import.
	ReplaceSnapshot(ctx context.Context, s model.Snapshot) (uint64, error)

	// PutPlayers replaces the global player list.
	PutPlayers(ctx context.Context, players []model.Player) (uint64, error)

	// PutSession stores a session under the Sunday key for date and
	// returns the normalized date it landed on.
	PutSession(ctx context.Context, date string, s model.Session) (string, uint64, error)

	// SetSessionDate selects the current play date, creating an empty
	// session for it when absent.
	SetSessionDate(ctx context.Context, date string) (string, uint64, error)

	// Close releases any underlying resources.
	Close() error
}
