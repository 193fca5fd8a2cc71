package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ower-data/internal/domain"
)

// AuditRepository appends to the shared audit trail. Writes are best-effort
// at the service layer; this repository just reports errors.
type AuditRepository interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
}

type PostgresAuditRepository struct {
	db *sql.DB
}

func NewPostgresAuditRepository(db *sql.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

var _ AuditRepository = (*PostgresAuditRepository)(nil)

func (r *PostgresAuditRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	q := `
		INSERT INTO ower.logger
			(row_pk_id, uid, action, client_addr, application_name,
			 action_stamp_tx, action_stamp_stm, action_stamp_clk,
			 schema_name, table_name, oid)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, q,
		e.RowPKID,
		e.UID,
		e.Action,
		e.ClientAddr,
		e.ApplicationName,
		e.ActionStamp,
		e.Resource.SchemaName,
		e.Resource.TableName,
		e.Resource.OID,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}
