package db

import (
	"context"
	"database/sql"
	"log/slog"

	"inventory-service/app/domain"
)

type healthRepository struct {
	conn *sql.DB
}

func NewHealthRepository(db *sql.DB) domain.HealthRepository {
	return &healthRepository{db}
}

func (r *healthRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.conn.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		slog.ErrorContext(ctx, "[healthRepository] Ping", "queryRowContext", err)
		return err
	}
	return nil
}
