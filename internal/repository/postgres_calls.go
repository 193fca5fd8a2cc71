package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ower-data/internal/domain"
)

type PostgresCallsRepository struct {
	db *sql.DB
}

func NewPostgresCallsRepository(db *sql.DB) *PostgresCallsRepository {
	return &PostgresCallsRepository{db: db}
}

var _ CallsRepository = (*PostgresCallsRepository)(nil)

func (r *PostgresCallsRepository) ListByHistoryID(ctx context.Context, historyRecordID int64) ([]domain.DebtorCall, error) {
	q := `
		SELECT
			dc.id,
			dc.history_record_id,
			dc.call_date,
			dc.call_topic,
			dc.created_at,
			dc.updated_at
		FROM ower.debtor_calls dc
		WHERE dc.history_record_id = $1
		ORDER BY dc.call_date DESC
	`

	rows, err := r.db.QueryContext(ctx, q, historyRecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debtor calls: %w", err)
	}
	defer rows.Close()

	out := []domain.DebtorCall{}
	for rows.Next() {
		var c domain.DebtorCall
		if err := rows.Scan(&c.ID, &c.HistoryRecordID, &c.CallDate, &c.CallTopic, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debtor call: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCallsRepository) Create(ctx context.Context, historyRecordID int64, callDate, callTopic string) (*domain.DebtorCall, error) {
	q := `
		INSERT INTO ower.debtor_calls
			(history_record_id, call_date, call_topic, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, history_record_id, call_date, call_topic, created_at, updated_at
	`

	var c domain.DebtorCall
	err := r.db.QueryRowContext(ctx, q, historyRecordID, callDate, callTopic).Scan(
		&c.ID,
		&c.HistoryRecordID,
		&c.CallDate,
		&c.CallTopic,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create debtor call: %w", err)
	}
	return &c, nil
}
