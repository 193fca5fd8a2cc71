package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ower-data/internal/config"
	"ower-data/internal/domain"
	"ower-data/internal/models"
	"ower-data/internal/repository"
	"ower-data/internal/store"

	"go.uber.org/zap"
)

// allowedDebtorFilterFields is applied to filter bodies before they reach the
// query builder; anything else in the request body is dropped.
var allowedDebtorFilterFields = []string{
	"identification",
	"non_residential_debt",
	"residential_debt",
	"land_debt",
	"orenda_debt",
	"mpz",
}

// exportLimit caps how many rows an Excel export pulls in one query.
const exportLimit = 10000

// DebtorService orchestrates the debtor listing, document generation and
// phone contact recording.
type DebtorService struct {
	debtors   repository.DebtorsRepository
	phones    repository.PhonesRepository
	registry  repository.RegistryRepository
	docClient DocumentClient
	audit     *auditor
	requisite *requisiteCache
	match     config.MatchConfig
	logger    *zap.Logger
}

func NewDebtorService(
	debtors repository.DebtorsRepository,
	phones repository.PhonesRepository,
	registry repository.RegistryRepository,
	docClient DocumentClient,
	auditRepo repository.AuditRepository,
	kv store.KV,
	match config.MatchConfig,
	logger *zap.Logger,
) *DebtorService {
	return &DebtorService{
		debtors:   debtors,
		phones:    phones,
		registry:  registry,
		docClient: docClient,
		audit:     newAuditor(auditRepo, logger),
		requisite: newRequisiteCache(kv, logger),
		match:     match,
		logger:    logger,
	}
}

// FilterDebtsRequest is the body of POST /debtor/api/v1/filter. Filters holds
// the structured filter fields; only allow-listed keys survive.
type FilterDebtsRequest struct {
	Page          int
	Limit         int
	Title         string
	SortBy        string
	SortDirection string
	Filters       map[string]any
	Actor         Actor
}

func (s *DebtorService) FilterDebts(ctx context.Context, req FilterDebtsRequest) (models.Page, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 16
	}
	limit, offset := models.Paginate(req.Page, req.Limit)

	conditions := repository.Conditions(req.Filters).Allow(allowedDebtorFilterFields)

	data, count, err := s.debtors.ListDebts(ctx, repository.ListDebtsParams{
		Limit:         limit,
		Offset:        offset,
		Title:         req.Title,
		Conditions:    conditions,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
		IPNSuffixLen:  s.match.IPNSuffixLen,
	})
	if err != nil {
		return models.Page{}, err
	}

	if req.Title != "" {
		s.audit.record(ctx, req.Actor, domain.AuditActionSearch, "Debtor search", nil, domain.AuditResourceDebtors)
	}

	return models.PageData(data, count, req.Page, req.Limit), nil
}

func (s *DebtorService) GetDebtor(ctx context.Context, id int64) (*domain.Debtor, error) {
	return s.debtors.GetDebtor(ctx, id)
}

// ExportDebts runs the same filtered listing without pagination and returns
// typed rows for the Excel writer.
func (s *DebtorService) ExportDebts(ctx context.Context, req FilterDebtsRequest) ([]domain.DebtorListItem, error) {
	conditions := repository.Conditions(req.Filters).Allow(allowedDebtorFilterFields)

	data, _, err := s.debtors.ListDebts(ctx, repository.ListDebtsParams{
		Limit:         exportLimit,
		Offset:        0,
		Title:         req.Title,
		Conditions:    conditions,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
		IPNSuffixLen:  s.match.IPNSuffixLen,
	})
	if err != nil {
		return nil, err
	}

	items := []domain.DebtorListItem{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode debtor listing: %w", err)
		}
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionSearch, "Debtor listing export", nil, domain.AuditResourceDebtors)
	return items, nil
}

// SavePhoneRequest records an operator's contact outcome for a debtor. An
// empty Phone means "checked, no number found".
type SavePhoneRequest struct {
	DebtorID int64
	Phone    string
	Actor    Actor
}

// SavePhone cross-references the remote registry for the debtor's full tax
// identifier; when the registry matches, the phone row is keyed by the
// registry clientid, otherwise by (name, ipn). Registry failures degrade to
// the keyless path.
func (s *DebtorService) SavePhone(ctx context.Context, req SavePhoneRequest) error {
	debtor, err := s.debtors.GetDebtor(ctx, req.DebtorID)
	if err != nil {
		return err
	}

	person, err := s.registry.FindFullIPN(ctx, debtor.Name, debtor.Identification)
	if err != nil {
		// The registry repo degrades internally; this is a belt-and-braces path.
		s.logger.Warn("registry lookup error", zap.Error(err))
		person = nil
	}

	if person != nil {
		err = s.phones.InsertByClientID(ctx, person.ID, req.Phone, debtor)
	} else {
		err = s.phones.InsertByDebtor(ctx, req.Phone, debtor)
	}
	if err != nil {
		return err
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionUpdate, "Debtor phone recorded", &debtor.ID, domain.AuditResourceDebtors)
	return nil
}

// GenerateDocument fetches the debtor and the requisite and delegates .docx
// rendering to the document service.
func (s *DebtorService) GenerateDocument(ctx context.Context, id int64, actor Actor) ([]byte, error) {
	debtor, err := s.debtors.GetDebtor(ctx, id)
	if err != nil {
		return nil, err
	}
	if debtor.TotalDebt() == 0 {
		return nil, fmt.Errorf("no debt data for document: %w", domain.ErrValidation)
	}

	req, err := s.requisite.get(ctx, "requisite:debtor", s.debtors.GetRequisite)
	if err != nil {
		return nil, err
	}

	doc, err := s.docClient.GenerateDebtNotice(ctx, DocRequest{
		Name:           debtor.Name,
		Identification: debtor.Identification,
		Date:           formatDate(debtor.Date),
		DebtText:       debtNoticeText(debtor, req),
		Requisite:      req,
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionGenerateDoc, "Debtor document generated", &debtor.ID, domain.AuditResourceDebtors)
	return doc, nil
}

// PrintPayload is the JSON body the front end renders for printing.
type PrintPayload struct {
	Name           string `json:"name"`
	Date           string `json:"date,omitempty"`
	Identification string `json:"identification"`
	Debt           string `json:"debt"`
}

func (s *DebtorService) PrintData(ctx context.Context, id int64, actor Actor) (*PrintPayload, error) {
	debtor, err := s.debtors.GetDebtor(ctx, id)
	if err != nil {
		return nil, err
	}
	if debtor.TotalDebt() == 0 {
		return nil, fmt.Errorf("no debt data for document: %w", domain.ErrValidation)
	}

	req, err := s.requisite.get(ctx, "requisite:debtor", s.debtors.GetRequisite)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionPrint, "Debtor document printed", &debtor.ID, domain.AuditResourceDebtors)

	return &PrintPayload{
		Name:           debtor.Name,
		Date:           formatDate(debtor.Date),
		Identification: debtor.Identification,
		Debt:           debtNoticeText(debtor, req),
	}, nil
}
