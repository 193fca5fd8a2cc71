package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ower-data/internal/domain"
	"ower-data/internal/models"
	"ower-data/internal/repository"

	"go.uber.org/zap"
)

// allowedAttendanceFilterFields go through the query builder; the front sends
// a date range as a two-element array, which becomes a BETWEEN predicate.
var allowedAttendanceFilterFields = []string{
	"date",
	"attendance_status",
}

// AttendanceService serves the per-day presence records uploaded for the
// kindergarten roster.
type AttendanceService struct {
	repo   repository.AttendanceRepository
	audit  *auditor
	logger *zap.Logger
}

func NewAttendanceService(repo repository.AttendanceRepository, auditRepo repository.AuditRepository, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		repo:   repo,
		audit:  newAuditor(auditRepo, logger),
		logger: logger,
	}
}

// FilterAttendanceRequest is the body of POST /attendance/api/v1/filter.
// Title matches child names; Filters holds the structured filter fields.
type FilterAttendanceRequest struct {
	Page          int
	Limit         int
	Title         string
	SortBy        string
	SortDirection string
	GroupID       *int64
	Filters       map[string]any
	Actor         Actor
}

func (s *AttendanceService) FilterAttendance(ctx context.Context, req FilterAttendanceRequest) (models.Page, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 16
	}
	limit, offset := models.Paginate(req.Page, req.Limit)

	conditions := repository.Conditions(req.Filters).Allow(allowedAttendanceFilterFields)

	data, count, err := s.repo.List(ctx, repository.ListAttendanceParams{
		Limit:         limit,
		Offset:        offset,
		ChildName:     req.Title,
		GroupID:       req.GroupID,
		Conditions:    conditions,
		SortBy:        sortByOrDefault(req.SortBy),
		SortDirection: sortDirectionOrDefault(req.SortDirection),
	})
	if err != nil {
		return models.Page{}, err
	}

	if req.Title != "" {
		s.audit.record(ctx, req.Actor, domain.AuditActionSearch, "Attendance search", nil, domain.AuditResourceAttendance)
	}

	return models.PageData(data, count, req.Page, req.Limit), nil
}

// ExportAttendance runs the same filtered listing without pagination and
// returns typed rows for the Excel writer.
func (s *AttendanceService) ExportAttendance(ctx context.Context, req FilterAttendanceRequest) ([]domain.AttendanceItem, error) {
	conditions := repository.Conditions(req.Filters).Allow(allowedAttendanceFilterFields)

	data, _, err := s.repo.List(ctx, repository.ListAttendanceParams{
		Limit:         exportLimit,
		Offset:        0,
		ChildName:     req.Title,
		GroupID:       req.GroupID,
		Conditions:    conditions,
		SortBy:        sortByOrDefault(req.SortBy),
		SortDirection: sortDirectionOrDefault(req.SortDirection),
	})
	if err != nil {
		return nil, err
	}

	items := []domain.AttendanceItem{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode attendance listing: %w", err)
		}
	}

	s.audit.record(ctx, req.Actor, domain.AuditActionSearch, "Attendance listing export", nil, domain.AuditResourceAttendance)
	return items, nil
}

// The attendance views open on the newest day first.
func sortByOrDefault(sortBy string) string {
	if sortBy == "" {
		return "date"
	}
	return sortBy
}

func sortDirectionOrDefault(dir string) string {
	if dir == "" {
		return "desc"
	}
	return dir
}
