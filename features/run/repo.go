package run

import (
	"context"
	"database/sql"
	"encoding/json"

	"shopsready/backend/internal/catalog"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Save(ctx context.Context, run *Run) error {
	cfg, err := json.Marshal(run.Config)
	if err != nil {
		return err
	}
	query := `INSERT INTO runs (filename, media, status, config) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, run.Filename, run.Media, run.Status, cfg).
		Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	var cfg, cat []byte
	var errMsg sql.NullString
	query := `SELECT id, filename, media, status, config, catalog, chunks_total, chunks_failed, error, created_at, updated_at FROM runs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&run.ID, &run.Filename, &run.Media, &run.Status, &cfg, &cat, &run.ChunksTotal, &run.ChunksFailed, &errMsg, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cfg, &run.Config); err != nil {
		return nil, err
	}
	if len(cat) > 0 {
		if err := json.Unmarshal(cat, &run.Catalog); err != nil {
			return nil, err
		}
	}
	run.Error = errMsg.String
	return run, nil
}

// List returns runs without their catalogs; review screens fetch a single
// run to get the full product set.
func (r *PostgresRepo) List(ctx context.Context) ([]Run, error) {
	query := `SELECT id, filename, media, status, chunks_total, chunks_failed, error, created_at, updated_at FROM runs ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var errMsg sql.NullString
		if err := rows.Scan(&run.ID, &run.Filename, &run.Media, &run.Status, &run.ChunksTotal, &run.ChunksFailed, &errMsg, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, err
		}
		run.Error = errMsg.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *PostgresRepo) UpdateResult(ctx context.Context, id, status string, cat catalog.Catalog, chunksTotal, chunksFailed int, errMsg string) error {
	// A nil catalog (failed run) must land as SQL NULL: marshaling it would
	// store the jsonb scalar 'null', which breaks array aggregates later.
	var data interface{}
	if cat != nil {
		b, err := json.Marshal(cat)
		if err != nil {
			return err
		}
		data = b
	}
	query := `UPDATE runs SET status = $1, catalog = $2, chunks_total = $3, chunks_failed = $4, error = $5, updated_at = NOW() WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, status, data, chunksTotal, chunksFailed, errMsg, id)
	return err
}

func (r *PostgresRepo) UpdateCatalog(ctx context.Context, id string, cat catalog.Catalog) error {
	data, err := json.Marshal(cat)
	if err != nil {
		return err
	}
	query := `UPDATE runs SET catalog = $1, updated_at = NOW() WHERE id = $2`
	_, err = r.db.ExecContext(ctx, query, data, id)
	return err
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE runs SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM runs WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM runs`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *PostgresRepo) ProductCount(ctx context.Context) (int, error) {
	var count int
	// The jsonb_typeof guard keeps rows holding non-array jsonb (legacy
	// 'null' scalars) from blowing up the aggregate.
	query := `SELECT COALESCE(SUM(jsonb_array_length(catalog)), 0) FROM runs WHERE jsonb_typeof(catalog) = 'array'`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
