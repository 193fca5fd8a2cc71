package repository

import (
	"context"

	"ower-data/internal/domain"
)

// PhonesRepository records contact outcomes in ower.phone. Rows are keyed
// either by the remote registry clientid or by (name, ipn); an empty phone
// still creates a "checked, no number" row.
type PhonesRepository interface {
	InsertByClientID(ctx context.Context, clientID int64, phone string, debtor *domain.Debtor) error
	InsertByDebtor(ctx context.Context, phone string, debtor *domain.Debtor) error
}

// RegistryRepository cross-references the remote identification registry for
// the full (unmasked) tax identifier. Lookups never fail the caller: any
// driver error degrades to a nil result.
type RegistryRepository interface {
	FindFullIPN(ctx context.Context, name, ipnSuffix string) (*domain.RegistryPerson, error)
}
