// Package storage defines the persistence-adapter capability interface
// from spec.md §6 — a key/value-ish interface with optimistic
// concurrency — and provides a Postgres-backed implementation plus an
// in-memory one for deterministic tests.
package storage

import "context"

// Row is a generic persisted record: an opaque value plus the version
// used for compare-and-swap updates.
type Row struct {
	Value   map[string]any
	Version int
}

// Adapter is the storage capability interface spec.md §6 describes.
// Errors are non-fatal for SCRIBE (logged, pipeline continues) and
// fatal only for usage-cap reads (fail-closed) — callers, not this
// interface, enforce that distinction.
type Adapter interface {
	// ReadOne returns the row for (table, key), or (nil, nil) if absent.
	ReadOne(ctx context.Context, table, key string) (*Row, error)
	// Upsert inserts or replaces the row at (table, conflictKey),
	// resetting its version to 0.
	Upsert(ctx context.Context, table string, key string, value map[string]any) error
	// UpdateIfVersion applies patch on top of the current value only if
	// the stored version equals expectedVersion, bumping the version on
	// success. Returns false (not an error) on a version mismatch.
	UpdateIfVersion(ctx context.Context, table, key string, patch map[string]any, expectedVersion int) (bool, error)
	// Append adds value to the named field's history log for (table,
	// key), creating the row if necessary. Used for append-only history.
	Append(ctx context.Context, table, key, field string, value any) error
	// Count returns the number of rows in table matching predicates
	// (exact-match equality over top-level value fields).
	Count(ctx context.Context, table string, predicates map[string]any) (int, error)
	// ReadHistory returns the values appended via Append for (table, key,
	// field), oldest first.
	ReadHistory(ctx context.Context, table, key, field string) ([]any, error)
}
