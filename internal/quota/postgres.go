package quota

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStore persists daily run counters in the usage_days table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, day string) (int, error) {
	var count int
	query := `SELECT runs FROM usage_days WHERE day = $1`
	err := s.db.QueryRowContext(ctx, query, day).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Increment bumps the day's counter in one statement, so concurrent callers
// serialize on the row instead of racing a read-then-write.
func (s *PostgresStore) Increment(ctx context.Context, day string) error {
	query := `INSERT INTO usage_days (day, runs) VALUES ($1, 1) ON CONFLICT (day) DO UPDATE SET runs = usage_days.runs + 1, updated_at = NOW()`
	_, err := s.db.ExecContext(ctx, query, day)
	return err
}

func (s *PostgresStore) Clear(ctx context.Context, day string) error {
	query := `DELETE FROM usage_days WHERE day = $1`
	_, err := s.db.ExecContext(ctx, query, day)
	return err
}
