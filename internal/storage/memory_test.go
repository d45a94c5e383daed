package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapterReadOneMissingReturnsNilNil(t *testing.T) {
	m := NewMemoryAdapter()
	row, err := m.ReadOne(context.Background(), "dossiers", "missing")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestMemoryAdapterUpsertThenReadOne(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, m.Upsert(ctx, "dossiers", "u1", map[string]any{"trustScore": 5.0}))

	row, err := m.ReadOne(ctx, "dossiers", "u1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 0, row.Version)
	assert.Equal(t, 5.0, row.Value["trustScore"])
}

func TestMemoryAdapterUpdateIfVersionRejectsStaleVersion(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()
	require.NoError(t, m.Upsert(ctx, "dossiers", "u1", map[string]any{"trustScore": 5.0}))

	ok, err := m.UpdateIfVersion(ctx, "dossiers", "u1", map[string]any{"trustScore": 6.0}, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAdapterUpdateIfVersionAppliesPatchAndBumpsVersion(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()
	require.NoError(t, m.Upsert(ctx, "dossiers", "u1", map[string]any{"trustScore": 5.0}))

	ok, err := m.UpdateIfVersion(ctx, "dossiers", "u1", map[string]any{"trustScore": 6.0}, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	row, err := m.ReadOne(ctx, "dossiers", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, row.Version)
	assert.Equal(t, 6.0, row.Value["trustScore"])
}

func TestMemoryAdapterUpdateIfVersionOnMissingRowFails(t *testing.T) {
	m := NewMemoryAdapter()
	ok, err := m.UpdateIfVersion(context.Background(), "dossiers", "ghost", map[string]any{"x": 1}, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAdapterAppendAndReadHistory(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, m.Append(ctx, "usage", "u1|2026-07-30", "runs", "first"))
	require.NoError(t, m.Append(ctx, "usage", "u1|2026-07-30", "runs", "second"))

	history, err := m.ReadHistory(ctx, "usage", "u1|2026-07-30", "runs")
	require.NoError(t, err)
	assert.Equal(t, []any{"first", "second"}, history)
}

func TestMemoryAdapterCountMatchesPredicatesWithinTable(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()
	require.NoError(t, m.Upsert(ctx, "usage", "u1", map[string]any{"day": "2026-07-30"}))
	require.NoError(t, m.Upsert(ctx, "usage", "u2", map[string]any{"day": "2026-07-30"}))
	require.NoError(t, m.Upsert(ctx, "usage", "u3", map[string]any{"day": "2026-07-29"}))
	require.NoError(t, m.Upsert(ctx, "dossiers", "d1", map[string]any{"day": "2026-07-30"}))

	count, err := m.Count(ctx, "usage", map[string]any{"day": "2026-07-30"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
