// FilePath: internal/repository/postgres/postgres.samples.go
package postgres

import (
	"context"

	"github.com/kc0bfv/power-sensor-monitor/internal/database"
	"github.com/kc0bfv/power-sensor-monitor/internal/errors"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/kc0bfv/power-sensor-monitor/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// SampleRepo keeps every read key's capped history in one table.
type SampleRepo struct {
	PostgresBaseRepo
}

var _ repository.SampleStore = (*SampleRepo)(nil)

func NewSampleRepository(db database.DB) *SampleRepo {
	repo := &PostgresBaseRepo{db: db}
	return &SampleRepo{PostgresBaseRepo: *repo}
}

// InitializeSchema creates the samples table when missing.
func (r *SampleRepo) InitializeSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS power_samples (
			id BIGSERIAL PRIMARY KEY,
			read_key TEXT NOT NULL,
			published_at TEXT NOT NULL,
			data TEXT NOT NULL,
			received_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_power_samples_read_key_id
			ON power_samples(read_key, id DESC)`,
	}
	for _, query := range queries {
		if _, err := r.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	nuts.L.Infof("[SampleRepo] Schema ready")
	return nil
}

func (r *SampleRepo) Append(ctx context.Context, readKey string, entry models.Entry, limit int) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	_, err = tx.ExecContext(ctx,
		`INSERT INTO power_samples (read_key, published_at, data) VALUES ($1, $2, $3)`,
		readKey, entry.PublishedAt, entry.Data,
	)
	if err != nil {
		return errors.NewStorageError("failed to insert sample", err)
	}

	if limit > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM power_samples
			WHERE read_key = $1 AND id NOT IN (
				SELECT id FROM power_samples WHERE read_key = $1 ORDER BY id DESC LIMIT $2
			)`,
			readKey, limit,
		)
		if err != nil {
			return errors.NewStorageError("failed to prune samples", err)
		}
	}

	return r.Commit(tx)
}

func (r *SampleRepo) List(ctx context.Context, readKey string) ([]models.Entry, error) {
	entries := []models.Entry{}
	query := `SELECT published_at, data FROM power_samples WHERE read_key = $1 ORDER BY id ASC`

	if err := r.db.GetDB().SelectContext(ctx, &entries, query, readKey); err != nil {
		return nil, errors.NewStorageError("failed to list samples", err)
	}
	return entries, nil
}
