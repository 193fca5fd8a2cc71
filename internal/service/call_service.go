package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ower-data/internal/config"
	"ower-data/internal/domain"
	"ower-data/internal/repository"

	"go.uber.org/zap"
)

// CallService owns the debtor call log and the identifier resolver that
// anchors calls to history records.
type CallService struct {
	debtors repository.DebtorsRepository
	history repository.HistoryRepository
	calls   repository.CallsRepository
	audit   *auditor
	match   config.MatchConfig
	logger  *zap.Logger
}

func NewCallService(
	debtors repository.DebtorsRepository,
	history repository.HistoryRepository,
	calls repository.CallsRepository,
	auditRepo repository.AuditRepository,
	match config.MatchConfig,
	logger *zap.Logger,
) *CallService {
	return &CallService{
		debtors: debtors,
		history: history,
		calls:   calls,
		audit:   newAuditor(auditRepo, logger),
		match:   match,
		logger:  logger,
	}
}

// ResolveHistoryID maps an identifier - either a numeric debtor id or a free
// text name - to the canonical history record id. The numeric path goes
// debtor id -> person name -> latest matching history record; the text path
// skips the first hop. Matching is substring unless configured exact, with
// ties broken by latest registry_date.
func (s *CallService) ResolveHistoryID(ctx context.Context, identifier string) (int64, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return 0, fmt.Errorf("identifier is required: %w", domain.ErrValidation)
	}

	exact := s.match.NameMode == "exact"

	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		name, err := s.debtors.GetDebtorName(ctx, id)
		if err != nil {
			return 0, err
		}
		rec, err := s.history.LatestByName(ctx, name, exact)
		if err != nil {
			return 0, err
		}
		return rec.ID, nil
	}

	rec, err := s.history.LatestByName(ctx, identifier, exact)
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// ListCalls resolves the identifier and returns all calls for that history
// record, newest first.
func (s *CallService) ListCalls(ctx context.Context, identifier string) ([]domain.DebtorCall, error) {
	historyID, err := s.ResolveHistoryID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.calls.ListByHistoryID(ctx, historyID)
}

// CreateCallRequest is the body of POST /debtor/api/v1/calls/{identifier}.
type CreateCallRequest struct {
	Identifier string
	CallDate   string
	CallTopic  string
	Actor      Actor
}

func (s *CallService) CreateCall(ctx context.Context, req CreateCallRequest) (*domain.DebtorCall, error) {
	if strings.TrimSpace(req.CallDate) == "" || strings.TrimSpace(req.CallTopic) == "" {
		return nil, fmt.Errorf("call_date and call_topic are required: %w", domain.ErrValidation)
	}

	historyID, err := s.ResolveHistoryID(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}

	call, err := s.calls.Create(ctx, historyID, req.CallDate, req.CallTopic)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionCreate, "Debtor call recorded", &call.ID, domain.AuditResourceCalls)
	return call, nil
}
