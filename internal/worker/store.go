package worker

import (
	"context"
	"database/sql"
)

type PostgresEventStore struct {
	db *sql.DB
}

func NewPostgresEventStore(db *sql.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

func (s *PostgresEventStore) Insert(ctx context.Context, runID, kind, event string, payload []byte) error {
	query := `INSERT INTO run_events (run_id, kind, event, payload) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, runID, kind, event, payload)
	return err
}
