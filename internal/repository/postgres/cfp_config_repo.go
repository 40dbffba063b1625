package postgres

import (
	"context"
	"database/sql"

	"github.com/erwannT/callForPapers/internal/domain"
)

type cfpConfigRepository struct {
	DB *sql.DB
}

func NewCfpConfigRepository(db *sql.DB) domain.ConfigRepository {
	return &cfpConfigRepository{DB: db}
}

// FindValueByKey returns the stored value for key, or "" when the key is
// absent. Missing keys are not an error: the settings read model simply
// leaves the field empty.
func (r *cfpConfigRepository) FindValueByKey(ctx context.Context, key string) (string, error) {
	var value string
	err := q(ctx, r.DB).QueryRowContext(ctx, `SELECT value FROM cfp_config WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Set is the single write entry point for configuration values; it upserts
// so repeated writes of the same value are idempotent.
func (r *cfpConfigRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO cfp_config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := q(ctx, r.DB).ExecContext(ctx, query, key, value)
	return err
}
