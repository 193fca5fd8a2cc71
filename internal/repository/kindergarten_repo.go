package repository

import (
	"context"
	"encoding/json"

	"ower-data/internal/domain"
)

// ListKindergartenDebtsParams mirrors ListDebtsParams for the kindergarten
// fee table; title filters by child name.
type ListKindergartenDebtsParams struct {
	Limit      int
	Offset     int
	Title      string
	Conditions Conditions
}

// KindergartenRepository covers ower.kindergarten_debt and its requisite.
type KindergartenRepository interface {
	ListDebts(ctx context.Context, p ListKindergartenDebtsParams) (json.RawMessage, int, error)
	GetDebt(ctx context.Context, id int64) (*domain.KindergartenDebt, error)
	GetRequisite(ctx context.Context) (*domain.Requisite, error)
}

// ListAttendanceParams filters and sorts the attendance listing. Date and
// status filters arrive as Conditions so a two-value date filter renders as
// BETWEEN; child name and group are matched explicitly against the roster.
type ListAttendanceParams struct {
	Limit         int
	Offset        int
	ChildName     string
	GroupID       *int64
	Conditions    Conditions
	SortBy        string
	SortDirection string
}

// AttendanceRepository reads ower.attendance joined with the roster.
type AttendanceRepository interface {
	List(ctx context.Context, p ListAttendanceParams) (json.RawMessage, int, error)
}

// ListGroupsParams filters and sorts the kindergarten groups listing.
type ListGroupsParams struct {
	Limit            int
	Offset           int
	KindergartenName string
	GroupName        string
	GroupType        string
	SortBy           string
	SortDirection    string
}

// GroupsRepository is the CRUD store for ower.kindergarten_groups.
type GroupsRepository interface {
	List(ctx context.Context, p ListGroupsParams) (json.RawMessage, int, error)
	GetByID(ctx context.Context, id int64) (*domain.KindergartenGroup, error)
	// FindByNameAndKindergarten is the natural-key duplicate pre-check;
	// excludeID skips the row being updated.
	FindByNameAndKindergarten(ctx context.Context, groupName, kindergartenName string, excludeID *int64) (*domain.KindergartenGroup, error)
	Create(ctx context.Context, g *domain.KindergartenGroup) (*domain.KindergartenGroup, error)
	Update(ctx context.Context, g *domain.KindergartenGroup) (*domain.KindergartenGroup, error)
	Delete(ctx context.Context, id int64) error
}

// ListChildrenParams filters and sorts the children roster listing.
type ListChildrenParams struct {
	Limit         int
	Offset        int
	ChildName     string
	ParentName    string
	GroupID       *int64
	SortBy        string
	SortDirection string
}

// ChildrenRepository is the CRUD store for ower.children_roster.
type ChildrenRepository interface {
	List(ctx context.Context, p ListChildrenParams) (json.RawMessage, int, error)
	GetByID(ctx context.Context, id int64) (*domain.ChildRosterItem, error)
	FindByNameAndGroup(ctx context.Context, childName string, groupID int64, excludeID *int64) (*domain.ChildRosterEntry, error)
	Create(ctx context.Context, c *domain.ChildRosterEntry) (*domain.ChildRosterEntry, error)
	Update(ctx context.Context, c *domain.ChildRosterEntry) (*domain.ChildRosterEntry, error)
	Delete(ctx context.Context, id int64) error
	// ListAll returns the full joined roster for the Excel export.
	ListAll(ctx context.Context) ([]domain.ChildRosterItem, error)
}
