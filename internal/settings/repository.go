package settings

import (
	"context"
	"database/sql"
	"fmt"

	"paybyrd-bridge/internal/logger"

	"go.uber.org/zap"
)

// Repository persists settings per store scope. Scope 0 holds the defaults
// every store inherits; a store scope row overrides the scope 0 row.
type Repository interface {
	Load(ctx context.Context, scope int) (*Settings, error)
	LoadOverrides(ctx context.Context, scope int) (Overrides, error)
	Save(ctx context.Context, s *Settings, overrides Overrides, scope int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context, scope int) (*Settings, error) {
	const q = `
		SELECT name, value
		FROM settings
		WHERE name LIKE 'paybyrd.%' AND store_id IN (0, $1)
		ORDER BY store_id
	`

	rows, err := r.db.QueryContext(ctx, q, scope)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	s := Defaults()
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		if err := s.apply(name, value); err != nil {
			logger.FromCtx(ctx).Warn("ignoring invalid setting",
				zap.Int("scope", scope),
				zap.Error(err),
			)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *repository) LoadOverrides(ctx context.Context, scope int) (Overrides, error) {
	overrides := Overrides{}
	if scope == 0 {
		return overrides, nil
	}

	const q = `
		SELECT name
		FROM settings
		WHERE name LIKE 'paybyrd.%' AND store_id = $1
	`

	rows, err := r.db.QueryContext(ctx, q, scope)
	if err != nil {
		return nil, fmt.Errorf("load setting overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		overrides[name] = true
	}
	return overrides, rows.Err()
}

// Save writes every field for the scope. A field is stored when the scope is
// the default scope or the field is overridden; otherwise the scope's row is
// removed so the default applies again.
func (r *repository) Save(ctx context.Context, s *Settings, overrides Overrides, scope int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO settings (name, value, store_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, store_id)
		DO UPDATE SET value = EXCLUDED.value
	`
	const remove = `DELETE FROM settings WHERE name = $1 AND store_id = $2`

	for _, field := range Fields {
		if scope == 0 || overrides[field] {
			_, err = tx.ExecContext(ctx, upsert, field, s.value(field), scope)
		} else {
			_, err = tx.ExecContext(ctx, remove, field, scope)
		}
		if err != nil {
			return fmt.Errorf("save setting %s: %w", field, err)
		}
	}

	return tx.Commit()
}
