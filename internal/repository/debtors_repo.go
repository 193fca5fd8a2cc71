package repository

import (
	"context"
	"encoding/json"

	"ower-data/internal/domain"
)

// ListDebtsParams is everything the filtered debtor listing needs. Conditions
// must already be reduced to allow-listed fields by the service.
type ListDebtsParams struct {
	Limit         int
	Offset        int
	Title         string
	Conditions    Conditions
	SortBy        string
	SortDirection string
	// IPNSuffixLen is how many trailing identifier digits the phone join
	// matches on (see config.MatchConfig).
	IPNSuffixLen int
}

// DebtorsRepository covers the ower.ower aggregate: the filtered listing,
// single-row reads and the document requisite.
type DebtorsRepository interface {
	// ListDebts returns one (json_agg, count) aggregate row: the page of
	// debtors as raw JSON plus the unpaginated total.
	ListDebts(ctx context.Context, p ListDebtsParams) (json.RawMessage, int, error)
	GetDebtor(ctx context.Context, id int64) (*domain.Debtor, error)
	// GetDebtorName returns just the person name for the resolver's first hop.
	GetDebtorName(ctx context.Context, id int64) (string, error)
	GetRequisite(ctx context.Context) (*domain.Requisite, error)
}
