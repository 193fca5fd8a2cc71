package domain

import "time"

// Group types accepted for kindergarten groups.
const (
	GroupTypeYoung = "young"
	GroupTypeOlder = "older"
)

// ValidGroupType reports whether t is an accepted group type.
func ValidGroupType(t string) bool {
	return t == GroupTypeYoung || t == GroupTypeOlder
}

// KindergartenDebt is a row of ower.kindergarten_debt: an outstanding
// kindergarten fee attributed to a child and the paying parent.
type KindergartenDebt struct {
	ID             int64      `json:"id"`
	ChildName      string     `json:"child_name"`
	ParentName     string     `json:"parent_name"`
	Identification string     `json:"identification"`
	DebtAmount     *float64   `json:"debt_amount"`
	Date           *time.Time `json:"date,omitempty"`
}

// KindergartenGroup is a row of ower.kindergarten_groups.
// (group_name, kindergarten_name) must be unique among groups.
type KindergartenGroup struct {
	ID               int64     `json:"id"`
	KindergartenName string    `json:"kindergarten_name"`
	GroupName        string    `json:"group_name"`
	GroupType        string    `json:"group_type"`
	CreatedAt        time.Time `json:"created_at"`
}

// ChildRosterEntry is a row of ower.children_roster.
// (child_name, group_id) must be unique; group_id references a group.
type ChildRosterEntry struct {
	ID          int64     `json:"id"`
	ChildName   string    `json:"child_name"`
	ParentName  string    `json:"parent_name"`
	PhoneNumber string    `json:"phone_number"`
	GroupID     int64     `json:"group_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChildRosterItem is a roster entry joined with its group for listings and
// the Excel export.
type ChildRosterItem struct {
	ChildRosterEntry
	GroupName        string `json:"group_name"`
	KindergartenName string `json:"kindergarten_name"`
}

// AttendanceRecord is a row of ower.attendance: one child's presence status
// on one day. Status values come from the uploading system and are stored
// as-is.
type AttendanceRecord struct {
	ID      int64     `json:"id"`
	ChildID int64     `json:"child_id"`
	Date    time.Time `json:"date"`
	Status  string    `json:"attendance_status"`
}

// AttendanceItem is an attendance record joined with the roster and its
// group for listings and the Excel export.
type AttendanceItem struct {
	AttendanceRecord
	ChildName        string `json:"child_name"`
	GroupName        string `json:"group_name"`
	GroupType        string `json:"group_type"`
	KindergartenName string `json:"kindergarten_name"`
}
