package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"assessment-forge/internal/database"
)

// PostgresAdapter implements Adapter over a generic jsonb-backed table
// pair: `kv_store` for versioned rows and `kv_history` for append-only
// logs, mirroring the teacher's pattern of a typed Go wrapper
// (internal/database.DB) around lib/pq with hand-written SQL per
// operation rather than an ORM.
type PostgresAdapter struct {
	db *database.DB
}

// NewPostgresAdapter wraps an open database connection.
func NewPostgresAdapter(db *database.DB) *PostgresAdapter {
	return &PostgresAdapter{db: db}
}

// Schema returns the DDL this adapter expects. Callers run it once
// during deployment bootstrap (mirrors the teacher's seed-on-boot style,
// but for schema rather than content).
const Schema = `
CREATE TABLE IF NOT EXISTS kv_store (
	table_name TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      JSONB NOT NULL,
	version    INT NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (table_name, key)
);

CREATE TABLE IF NOT EXISTS kv_history (
	id         BIGSERIAL PRIMARY KEY,
	table_name TEXT NOT NULL,
	key        TEXT NOT NULL,
	field      TEXT NOT NULL,
	value      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS kv_history_lookup ON kv_history (table_name, key, field);
`

func (p *PostgresAdapter) ReadOne(ctx context.Context, table, key string) (*Row, error) {
	var raw []byte
	var version int
	err := p.db.QueryRowContext(ctx, `
		SELECT value, version FROM kv_store WHERE table_name = $1 AND key = $2
	`, table, key).Scan(&raw, &version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read one %s/%s: %w", table, key, err)
	}
	var value map[string]any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("storage: decode %s/%s: %w", table, key, err)
	}
	return &Row{Value: value, Version: version}, nil
}

func (p *PostgresAdapter) Upsert(ctx context.Context, table, key string, value map[string]any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s/%s: %w", table, key, err)
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO kv_store (table_name, key, value, version, updated_at)
		VALUES ($1, $2, $3, 0, NOW())
		ON CONFLICT (table_name, key) DO UPDATE
		SET value = EXCLUDED.value, version = 0, updated_at = NOW()
	`, table, key, raw)
	if err != nil {
		return fmt.Errorf("storage: upsert %s/%s: %w", table, key, err)
	}
	return nil
}

func (p *PostgresAdapter) UpdateIfVersion(ctx context.Context, table, key string, patch map[string]any, expectedVersion int) (bool, error) {
	current, err := p.ReadOne(ctx, table, key)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	if current.Version != expectedVersion {
		return false, nil
	}

	merged := make(map[string]any, len(current.Value)+len(patch))
	for k, v := range current.Value {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return false, fmt.Errorf("storage: encode patch %s/%s: %w", table, key, err)
	}

	res, err := p.db.ExecContext(ctx, `
		UPDATE kv_store SET value = $1, version = version + 1, updated_at = NOW()
		WHERE table_name = $2 AND key = $3 AND version = $4
	`, raw, table, key, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("storage: cas update %s/%s: %w", table, key, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cas rows affected %s/%s: %w", table, key, err)
	}
	return rows == 1, nil
}

func (p *PostgresAdapter) Append(ctx context.Context, table, key, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode append %s/%s/%s: %w", table, key, field, err)
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO kv_history (table_name, key, field, value, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, table, key, field, raw)
	if err != nil {
		return fmt.Errorf("storage: append %s/%s/%s: %w", table, key, field, err)
	}
	return nil
}

func (p *PostgresAdapter) ReadHistory(ctx context.Context, table, key, field string) ([]any, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT value FROM kv_history
		WHERE table_name = $1 AND key = $2 AND field = $3
		ORDER BY id ASC
	`, table, key, field)
	if err != nil {
		return nil, fmt.Errorf("storage: read history %s/%s/%s: %w", table, key, field, err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("storage: scan history %s/%s/%s: %w", table, key, field, err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("storage: decode history %s/%s/%s: %w", table, key, field, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (p *PostgresAdapter) Count(ctx context.Context, table string, predicates map[string]any) (int, error) {
	raw, err := json.Marshal(predicates)
	if err != nil {
		return 0, fmt.Errorf("storage: encode predicates for %s: %w", table, err)
	}
	var count int
	err = p.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM kv_store WHERE table_name = $1 AND value @> $2::jsonb
	`, table, raw).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: count %s: %w", table, err)
	}
	return count, nil
}
