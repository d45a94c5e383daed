package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryAdapter is an in-process Adapter backed by a mutex-guarded map.
// It gives package tests a deterministic store without a Postgres
// instance, following the same round-trip-through-JSON approach as the
// Postgres adapter so callers can't depend on Go value identity.
type MemoryAdapter struct {
	mu   sync.Mutex
	rows map[string]*Row
	logs map[string][]any
}

// NewMemoryAdapter returns an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		rows: make(map[string]*Row),
		logs: make(map[string][]any),
	}
}

func rowKey(table, key string) string {
	return table + "\x00" + key
}

func logKey(table, key, field string) string {
	return table + "\x00" + key + "\x00" + field
}

func cloneValue(v map[string]any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	out := make(map[string]any)
	_ = json.Unmarshal(raw, &out)
	return out
}

func (m *MemoryAdapter) ReadOne(ctx context.Context, table, key string) (*Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[rowKey(table, key)]
	if !ok {
		return nil, nil
	}
	return &Row{Value: cloneValue(row.Value), Version: row.Version}, nil
}

func (m *MemoryAdapter) Upsert(ctx context.Context, table, key string, value map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[rowKey(table, key)] = &Row{Value: cloneValue(value), Version: 0}
	return nil
}

func (m *MemoryAdapter) UpdateIfVersion(ctx context.Context, table, key string, patch map[string]any, expectedVersion int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[rowKey(table, key)]
	if !ok {
		return false, nil
	}
	if row.Version != expectedVersion {
		return false, nil
	}
	merged := cloneValue(row.Value)
	for k, v := range patch {
		merged[k] = v
	}
	m.rows[rowKey(table, key)] = &Row{Value: merged, Version: row.Version + 1}
	return true, nil
}

func (m *MemoryAdapter) Append(ctx context.Context, table, key, field string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lk := logKey(table, key, field)
	m.logs[lk] = append(m.logs[lk], value)
	return nil
}

func (m *MemoryAdapter) Count(ctx context.Context, table string, predicates map[string]any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for k, row := range m.rows {
		if !sameTable(k, table) {
			continue
		}
		if matches(row.Value, predicates) {
			count++
		}
	}
	return count, nil
}

func sameTable(rowKey, table string) bool {
	for i := 0; i < len(rowKey); i++ {
		if rowKey[i] == 0 {
			return rowKey[:i] == table
		}
	}
	return false
}

func matches(value, predicates map[string]any) bool {
	for k, want := range predicates {
		got, ok := value[k]
		if !ok {
			return false
		}
		wantRaw, _ := json.Marshal(want)
		gotRaw, _ := json.Marshal(got)
		if string(wantRaw) != string(gotRaw) {
			return false
		}
	}
	return true
}

func (m *MemoryAdapter) ReadHistory(ctx context.Context, table, key, field string) ([]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.logs[logKey(table, key, field)]...), nil
}
