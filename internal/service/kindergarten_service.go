package service

import (
	"context"
	"fmt"

	"ower-data/internal/domain"
	"ower-data/internal/models"
	"ower-data/internal/repository"
	"ower-data/internal/store"

	"go.uber.org/zap"
)

var allowedKindergartenFilterFields = []string{
	"child_name",
	"parent_name",
	"identification",
	"debt_amount",
}

// KindergartenService serves the kindergarten fee debts and their documents.
type KindergartenService struct {
	repo      repository.KindergartenRepository
	docClient DocumentClient
	audit     *auditor
	requisite *requisiteCache
	logger    *zap.Logger
}

func NewKindergartenService(
	repo repository.KindergartenRepository,
	docClient DocumentClient,
	auditRepo repository.AuditRepository,
	kv store.KV,
	logger *zap.Logger,
) *KindergartenService {
	return &KindergartenService{
		repo:      repo,
		docClient: docClient,
		audit:     newAuditor(auditRepo, logger),
		requisite: newRequisiteCache(kv, logger),
		logger:    logger,
	}
}

// FilterKindergartenRequest is the body of POST /kindergarten/api/v1/filter.
type FilterKindergartenRequest struct {
	Page    int
	Limit   int
	Title   string
	Filters map[string]any
	Actor   Actor
}

func (s *KindergartenService) FilterDebts(ctx context.Context, req FilterKindergartenRequest) (models.Page, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 16
	}
	limit, offset := models.Paginate(req.Page, req.Limit)

	conditions := repository.Conditions(req.Filters).Allow(allowedKindergartenFilterFields)

	data, count, err := s.repo.ListDebts(ctx, repository.ListKindergartenDebtsParams{
		Limit:      limit,
		Offset:     offset,
		Title:      req.Title,
		Conditions: conditions,
	})
	if err != nil {
		return models.Page{}, err
	}

	if req.Title != "" || conditions["child_name"] != nil {
		s.audit.record(ctx, req.Actor, domain.AuditActionSearch, "Kindergarten debtor search", nil, domain.AuditResourceKindergarten)
	}

	return models.PageData(data, count, req.Page, req.Limit), nil
}

func (s *KindergartenService) GetDebt(ctx context.Context, id int64) (*domain.KindergartenDebt, error) {
	return s.repo.GetDebt(ctx, id)
}

func (s *KindergartenService) GenerateDocument(ctx context.Context, id int64, actor Actor) ([]byte, error) {
	debt, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}
	if debtValue(debt.DebtAmount) == 0 {
		return nil, fmt.Errorf("no debt data for document: %w", domain.ErrValidation)
	}

	req, err := s.requisite.get(ctx, "requisite:kindergarten", s.repo.GetRequisite)
	if err != nil {
		return nil, err
	}

	doc, err := s.docClient.GenerateDebtNotice(ctx, DocRequest{
		Name:           debt.ChildName,
		Identification: debt.Identification,
		Date:           formatDate(debt.Date),
		DebtText:       kindergartenNoticeText(debt, req),
		Requisite:      req,
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionGenerateDoc, "Kindergarten document generated", &debt.ID, domain.AuditResourceKindergarten)
	return doc, nil
}

func (s *KindergartenService) PrintData(ctx context.Context, id int64, actor Actor) (*PrintPayload, error) {
	debt, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}
	if debtValue(debt.DebtAmount) == 0 {
		return nil, fmt.Errorf("no debt data for document: %w", domain.ErrValidation)
	}

	req, err := s.requisite.get(ctx, "requisite:kindergarten", s.repo.GetRequisite)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionPrint, "Kindergarten document printed", &debt.ID, domain.AuditResourceKindergarten)

	return &PrintPayload{
		Name:           debt.ChildName,
		Date:           formatDate(debt.Date),
		Identification: debt.Identification,
		Debt:           kindergartenNoticeText(debt, req),
	}, nil
}
