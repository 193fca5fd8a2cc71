package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ower-data/internal/domain"
)

type PostgresKindergartenRepository struct {
	db *sql.DB
}

func NewPostgresKindergartenRepository(db *sql.DB) *PostgresKindergartenRepository {
	return &PostgresKindergartenRepository{db: db}
}

var _ KindergartenRepository = (*PostgresKindergartenRepository)(nil)

func (r *PostgresKindergartenRepository) ListDebts(ctx context.Context, p ListKindergartenDebtsParams) (json.RawMessage, int, error) {
	q := `
		SELECT json_agg(q.rw) AS data,
			MAX(q.cnt) AS count
		FROM (
			SELECT json_build_object(
				'id', id,
				'child_name', child_name,
				'parent_name', parent_name,
				'identification', identification,
				'debt_amount', debt_amount,
				'date', date
			) AS rw,
			count(*) OVER () AS cnt
			FROM ower.kindergarten_debt
			WHERE 1=1`

	args := []any{}
	argIdx := 1

	condText, condArgs, nextIdx := p.Conditions.Build("", argIdx)
	q += condText
	args = append(args, condArgs...)
	argIdx = nextIdx

	if p.Title != "" {
		q += fmt.Sprintf(" AND child_name ILIKE $%d", argIdx)
		args = append(args, "%"+p.Title+"%")
		argIdx++
	}

	q += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, p.Limit, p.Offset)
	q += `
		) q`

	var data sql.NullString
	var count sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&data, &count); err != nil {
		return nil, 0, fmt.Errorf("failed to list kindergarten debts: %w", err)
	}

	var raw json.RawMessage
	if data.Valid {
		raw = json.RawMessage(data.String)
	}
	return raw, int(count.Int64), nil
}

func (r *PostgresKindergartenRepository) GetDebt(ctx context.Context, id int64) (*domain.KindergartenDebt, error) {
	q := `
		SELECT id, child_name, parent_name, identification, debt_amount, date
		FROM ower.kindergarten_debt
		WHERE id = $1
	`

	var d domain.KindergartenDebt
	var amount sql.NullFloat64
	var date sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.ChildName,
		&d.ParentName,
		&d.Identification,
		&amount,
		&date,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("kindergarten debt %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get kindergarten debt: %w", err)
	}

	d.DebtAmount = nullFloat(amount)
	if date.Valid {
		d.Date = &date.Time
	}
	return &d, nil
}

func (r *PostgresKindergartenRepository) GetRequisite(ctx context.Context) (*domain.Requisite, error) {
	return scanRequisite(r.db.QueryRowContext(ctx, `
		SELECT id, org_name, edrpou, account, bank_name, payment_purpose, address, phone
		FROM ower.kindergarten_settings
		LIMIT 1
	`))
}
