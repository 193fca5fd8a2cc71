package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ower-data/internal/domain"
)

type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

var _ HistoryRepository = (*PostgresHistoryRepository)(nil)

func (r *PostgresHistoryRepository) LatestByName(ctx context.Context, personName string, exact bool) (*domain.HistoryRecord, error) {
	pattern := personName
	if !exact {
		pattern = "%" + personName + "%"
	}

	q := `
		SELECT id, person_name, identification, registry_date
		FROM ower.ower_history
		WHERE person_name LIKE $1
		ORDER BY registry_date DESC
		LIMIT 1
	`

	var rec domain.HistoryRecord
	err := r.db.QueryRowContext(ctx, q, pattern).Scan(
		&rec.ID,
		&rec.PersonName,
		&rec.Identification,
		&rec.RegistryDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("history record for %q: %w", personName, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get history record: %w", err)
	}
	return &rec, nil
}
