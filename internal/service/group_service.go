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

// GroupService manages kindergarten groups with the (group_name,
// kindergarten_name) natural-key invariant.
type GroupService struct {
	groups repository.GroupsRepository
	audit  *auditor
	logger *zap.Logger
}

func NewGroupService(groups repository.GroupsRepository, auditRepo repository.AuditRepository, logger *zap.Logger) *GroupService {
	return &GroupService{
		groups: groups,
		audit:  newAuditor(auditRepo, logger),
		logger: logger,
	}
}

// FilterGroupsRequest is the body of POST /kindergarten/api/v1/groups/filter.
type FilterGroupsRequest struct {
	Page             int
	Limit            int
	KindergartenName string
	GroupName        string
	GroupType        string
	SortBy           string
	SortDirection    string
	Actor            Actor
}

func (s *GroupService) FilterGroups(ctx context.Context, req FilterGroupsRequest) (models.Page, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 16
	}
	limit, offset := models.Paginate(req.Page, req.Limit)

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	sortDirection := req.SortDirection
	if sortDirection == "" {
		sortDirection = "desc"
	}

	data, count, err := s.groups.List(ctx, repository.ListGroupsParams{
		Limit:            limit,
		Offset:           offset,
		KindergartenName: req.KindergartenName,
		GroupName:        req.GroupName,
		GroupType:        req.GroupType,
		SortBy:           sortBy,
		SortDirection:    sortDirection,
	})
	if err != nil {
		return models.Page{}, err
	}

	if req.KindergartenName != "" || req.GroupName != "" || req.GroupType != "" {
		s.audit.record(ctx, req.Actor, domain.AuditActionSearch, "Kindergarten group search", nil, domain.AuditResourceGroups)
	}

	return models.PageData(data, count, req.Page, req.Limit), nil
}

// GroupRequest carries create/update input for a group.
type GroupRequest struct {
	KindergartenName string
	GroupName        string
	GroupType        string
	Actor            Actor
}

func (s *GroupService) validate(req GroupRequest) error {
	if strings.TrimSpace(req.KindergartenName) == "" || strings.TrimSpace(req.GroupName) == "" {
		return fmt.Errorf("kindergarten_name and group_name are required: %w", domain.ErrValidation)
	}
	if !domain.ValidGroupType(req.GroupType) {
		return fmt.Errorf("group_type must be young or older: %w", domain.ErrValidation)
	}
	return nil
}

func (s *GroupService) CreateGroup(ctx context.Context, req GroupRequest) (*domain.KindergartenGroup, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	existing, err := s.groups.FindByNameAndKindergarten(ctx, req.GroupName, req.KindergartenName, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("group %q in %q: %w", req.GroupName, req.KindergartenName, domain.ErrConflict)
	}

	group, err := s.groups.Create(ctx, &domain.KindergartenGroup{
		KindergartenName: req.KindergartenName,
		GroupName:        req.GroupName,
		GroupType:        req.GroupType,
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionCreate, "Kindergarten group created", &group.ID, domain.AuditResourceGroups)
	return group, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, id int64, req GroupRequest) (*domain.KindergartenGroup, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if _, err := s.groups.GetByID(ctx, id); err != nil {
		return nil, err
	}

	// Duplicate pre-check excludes the row being updated
	existing, err := s.groups.FindByNameAndKindergarten(ctx, req.GroupName, req.KindergartenName, &id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("group %q in %q: %w", req.GroupName, req.KindergartenName, domain.ErrConflict)
	}

	group, err := s.groups.Update(ctx, &domain.KindergartenGroup{
		ID:               id,
		KindergartenName: req.KindergartenName,
		GroupName:        req.GroupName,
		GroupType:        req.GroupType,
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionUpdate, "Kindergarten group updated", &group.ID, domain.AuditResourceGroups)
	return group, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, id int64, actor Actor) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, domain.AuditActionDelete, "Kindergarten group deleted", &id, domain.AuditResourceGroups)
	return nil
}
