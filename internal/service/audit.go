package service

import (
	"context"
	"time"

	"ower-data/internal/domain"
	"ower-data/internal/repository"

	"go.uber.org/zap"
)

// Actor identifies who performed an operation; filled by the handler layer
// from the authenticated request.
type Actor struct {
	UID        *int64
	ClientAddr string
}

// auditor writes audit entries best-effort: a failed write is logged at Warn
// and never fails the parent operation. The policy is uniform across modules.
type auditor struct {
	repo   repository.AuditRepository
	logger *zap.Logger
}

func newAuditor(repo repository.AuditRepository, logger *zap.Logger) *auditor {
	return &auditor{repo: repo, logger: logger}
}

func (a *auditor) record(ctx context.Context, actor Actor, action, appName string, rowPK *int64, res domain.AuditResource) {
	if a.repo == nil {
		return
	}
	entry := &domain.AuditEntry{
		RowPKID:         rowPK,
		UID:             actor.UID,
		Action:          action,
		ClientAddr:      actor.ClientAddr,
		ApplicationName: appName,
		ActionStamp:     time.Now(),
		Resource:        res,
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Warn("audit entry not written",
			zap.String("action", action),
			zap.String("table", res.TableName),
			zap.Error(err))
	}
}
