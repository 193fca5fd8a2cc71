package repository

import (
	"context"

	"ower-data/internal/domain"
)

// HistoryRepository reads ower.ower_history snapshots. A person may have
// several; "latest" always means registry_date descending.
type HistoryRepository interface {
	// LatestByName returns the most recent history record whose person_name
	// matches. exact=false does a substring match (the registry stores names
	// with varying decorations), ties broken by latest registry_date.
	LatestByName(ctx context.Context, personName string, exact bool) (*domain.HistoryRecord, error)
}

// CallsRepository is the append-only ower.debtor_calls store.
type CallsRepository interface {
	ListByHistoryID(ctx context.Context, historyRecordID int64) ([]domain.DebtorCall, error)
	Create(ctx context.Context, historyRecordID int64, callDate, callTopic string) (*domain.DebtorCall, error)
}
