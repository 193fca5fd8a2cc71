package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ower-data/internal/domain"
)

type PostgresPhonesRepository struct {
	db *sql.DB
}

func NewPostgresPhonesRepository(db *sql.DB) *PostgresPhonesRepository {
	return &PostgresPhonesRepository{db: db}
}

var _ PhonesRepository = (*PostgresPhonesRepository)(nil)

// InsertByClientID stores a contact outcome matched through the remote
// registry. An empty phone only marks the debtor as checked.
func (r *PostgresPhonesRepository) InsertByClientID(ctx context.Context, clientID int64, phone string, debtor *domain.Debtor) error {
	phone = strings.TrimSpace(phone)
	var err error
	if phone != "" {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ower.phone (clientid, phone, ischecked, hasnumber, name, ipn)
			 VALUES ($1, $2, true, true, $3, $4)`,
			clientID, phone, debtor.Name, debtor.Identification)
	} else {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ower.phone (clientid, ischecked, hasnumber, name, ipn)
			 VALUES ($1, true, false, $2, $3)`,
			clientID, debtor.Name, debtor.Identification)
	}
	if err != nil {
		return fmt.Errorf("failed to insert phone by clientid: %w", err)
	}
	return nil
}

// InsertByDebtor stores a contact outcome when the remote registry had no
// match; the row is keyed by (name, ipn) only.
func (r *PostgresPhonesRepository) InsertByDebtor(ctx context.Context, phone string, debtor *domain.Debtor) error {
	phone = strings.TrimSpace(phone)
	var err error
	if phone != "" {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ower.phone (phone, ischecked, hasnumber, name, ipn)
			 VALUES ($1, true, true, $2, $3)`,
			phone, debtor.Name, debtor.Identification)
	} else {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ower.phone (ischecked, hasnumber, name, ipn)
			 VALUES (true, false, $1, $2)`,
			debtor.Name, debtor.Identification)
	}
	if err != nil {
		return fmt.Errorf("failed to insert phone by debtor: %w", err)
	}
	return nil
}
