package service

import (
	"context"
	"fmt"
	"strings"

	"ower-data/internal/domain"
	"ower-data/internal/models"
	"ower-data/internal/repository"

	"go.uber.org/zap"
)

// ChildrenService manages the children roster with the (child_name, group_id)
// natural-key invariant and the group-existence check.
type ChildrenService struct {
	children repository.ChildrenRepository
	groups   repository.GroupsRepository
	audit    *auditor
	logger   *zap.Logger
}

func NewChildrenService(
	children repository.ChildrenRepository,
	groups repository.GroupsRepository,
	auditRepo repository.AuditRepository,
	logger *zap.Logger,
) *ChildrenService {
	return &ChildrenService{
		children: children,
		groups:   groups,
		audit:    newAuditor(auditRepo, logger),
		logger:   logger,
	}
}

// FilterChildrenRequest is the body of POST /children/api/v1/filter.
type FilterChildrenRequest struct {
	Page          int
	Limit         int
	ChildName     string
	ParentName    string
	GroupID       *int64
	SortBy        string
	SortDirection string
	Actor         Actor
}

func (s *ChildrenService) FilterChildren(ctx context.Context, req FilterChildrenRequest) (models.Page, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 16
	}
	limit, offset := models.Paginate(req.Page, req.Limit)

	data, count, err := s.children.List(ctx, repository.ListChildrenParams{
		Limit:         limit,
		Offset:        offset,
		ChildName:     req.ChildName,
		ParentName:    req.ParentName,
		GroupID:       req.GroupID,
		SortBy:        req.SortBy,
		SortDirection: req.SortDirection,
	})
	if err != nil {
		return models.Page{}, err
	}

	if req.ChildName != "" || req.ParentName != "" {
		s.audit.record(ctx, req.Actor, domain.AuditActionSearch, "Children roster search", nil, domain.AuditResourceChildren)
	}

	return models.PageData(data, count, req.Page, req.Limit), nil
}

func (s *ChildrenService) GetChild(ctx context.Context, id int64) (*domain.ChildRosterItem, error) {
	return s.children.GetByID(ctx, id)
}

// ChildRequest carries create/update input for a roster entry.
type ChildRequest struct {
	ChildName   string
	ParentName  string
	PhoneNumber string
	GroupID     int64
	Actor       Actor
}

func (s *ChildrenService) validate(req ChildRequest) error {
	if strings.TrimSpace(req.ChildName) == "" || strings.TrimSpace(req.ParentName) == "" {
		return fmt.Errorf("child_name and parent_name are required: %w", domain.ErrValidation)
	}
	if req.GroupID <= 0 {
		return fmt.Errorf("group_id is required: %w", domain.ErrValidation)
	}
	return nil
}

// checkGroup verifies the target group exists before any write touches the
// roster; a missing group is NotFound, not a foreign-key error.
func (s *ChildrenService) checkGroup(ctx context.Context, groupID int64) error {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return fmt.Errorf("group %d: %w", groupID, err)
	}
	return nil
}

func (s *ChildrenService) CreateChild(ctx context.Context, req ChildRequest) (*domain.ChildRosterEntry, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	existing, err := s.children.FindByNameAndGroup(ctx, req.ChildName, req.GroupID, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("child %q in group %d: %w", req.ChildName, req.GroupID, domain.ErrConflict)
	}

	child, err := s.children.Create(ctx, &domain.ChildRosterEntry{
		ChildName:   req.ChildName,
		ParentName:  req.ParentName,
		PhoneNumber: req.PhoneNumber,
		GroupID:     req.GroupID,
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionCreate, "Roster entry created", &child.ID, domain.AuditResourceChildren)
	return child, nil
}

func (s *ChildrenService) UpdateChild(ctx context.Context, id int64, req ChildRequest) (*domain.ChildRosterEntry, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if _, err := s.children.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	existing, err := s.children.FindByNameAndGroup(ctx, req.ChildName, req.GroupID, &id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("child %q in group %d: %w", req.ChildName, req.GroupID, domain.ErrConflict)
	}

	child, err := s.children.Update(ctx, &domain.ChildRosterEntry{
		ID:          id,
		ChildName:   req.ChildName,
		ParentName:  req.ParentName,
		PhoneNumber: req.PhoneNumber,
		GroupID:     req.GroupID,
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionUpdate, "Roster entry updated", &child.ID, domain.AuditResourceChildren)
	return child, nil
}

func (s *ChildrenService) DeleteChild(ctx context.Context, id int64, actor Actor) error {
	if err := s.children.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, domain.AuditActionDelete, "Roster entry deleted", &id, domain.AuditResourceChildren)
	return nil
}

// ExportRoster returns the full joined roster for the Excel export.
func (s *ChildrenService) ExportRoster(ctx context.Context, actor Actor) ([]domain.ChildRosterItem, error) {
	items, err := s.children.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, domain.AuditActionSearch, "Children roster export", nil, domain.AuditResourceChildren)
	return items, nil
}
