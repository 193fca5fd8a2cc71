package repository

import (
	"context"
	"database/sql"

	"ower-data/internal/domain"

	"go.uber.org/zap"
)

// PostgresRegistryRepository looks up the remote identification registry over
// its own connection. The registry is an availability liability, so failures
// are logged and swallowed: the caller always gets a usable (possibly nil)
// result.
type PostgresRegistryRepository struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

func NewPostgresRegistryRepository(db *sql.DB, table string, logger *zap.Logger) *PostgresRegistryRepository {
	return &PostgresRegistryRepository{db: db, table: table, logger: logger}
}

var _ RegistryRepository = (*PostgresRegistryRepository)(nil)

// FindFullIPN matches a debtor by exact name plus identifier suffix and
// returns the registry row with the full identifier, or nil when there is no
// match or the registry is unreachable.
func (r *PostgresRegistryRepository) FindFullIPN(ctx context.Context, name, ipnSuffix string) (*domain.RegistryPerson, error) {
	if r.db == nil {
		return nil, nil
	}

	// Table name comes from config, not from request input.
	q := `SELECT id, name, ipn AS identification FROM ` + r.table + `
		WHERE name = $1 AND ipn ILIKE '%' || $2
		LIMIT 1`

	var person domain.RegistryPerson
	err := r.db.QueryRowContext(ctx, q, name, ipnSuffix).Scan(&person.ID, &person.Name, &person.Identification)
	if err == sql.ErrNoRows {
		r.logger.Info("registry: no match for debtor",
			zap.String("name", name),
			zap.String("ipn_suffix", ipnSuffix))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("registry lookup failed, degrading to empty result",
			zap.String("name", name),
			zap.Error(err))
		return nil, nil
	}

	r.logger.Info("registry: debtor matched", zap.String("name", name))
	return &person, nil
}
