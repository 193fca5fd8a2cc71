package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Sort keys for the attendance listing; child and group columns come from
// the joined roster tables.
var attendanceSortFields = map[string]string{
	"id":                "a.id",
	"date":              "a.date",
	"attendance_status": "a.attendance_status",
	"child_name":        "cr.child_name",
	"group_name":        "kg.group_name",
	"kindergarten_name": "kg.kindergarten_name",
}

type PostgresAttendanceRepository struct {
	db *sql.DB
}

func NewPostgresAttendanceRepository(db *sql.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{db: db}
}

var _ AttendanceRepository = (*PostgresAttendanceRepository)(nil)

func (r *PostgresAttendanceRepository) List(ctx context.Context, p ListAttendanceParams) (json.RawMessage, int, error) {
	q := `
		SELECT json_agg(q.rw) AS data, MAX(q.cnt) AS count
		FROM (
			SELECT json_build_object(
				'id', a.id,
				'child_id', a.child_id,
				'date', a.date,
				'attendance_status', a.attendance_status,
				'child_name', cr.child_name,
				'group_name', kg.group_name,
				'group_type', kg.group_type,
				'kindergarten_name', kg.kindergarten_name
			) AS rw,
			count(*) OVER () AS cnt
			FROM ower.attendance a
			JOIN ower.children_roster cr ON cr.id = a.child_id
			JOIN ower.kindergarten_groups kg ON kg.id = cr.group_id
			WHERE 1=1`

	args := []any{}
	argIdx := 1

	condText, condArgs, nextIdx := p.Conditions.Build("a", argIdx)
	q += condText
	args = append(args, condArgs...)
	argIdx = nextIdx

	if p.ChildName != "" {
		q += fmt.Sprintf(" AND cr.child_name ILIKE $%d", argIdx)
		args = append(args, "%"+p.ChildName+"%")
		argIdx++
	}
	if p.GroupID != nil {
		q += fmt.Sprintf(" AND cr.group_id = $%d", argIdx)
		args = append(args, *p.GroupID)
		argIdx++
	}

	sortField := SafeSortField(p.SortBy, attendanceSortFields, "a.date")
	direction := SortDirection(p.SortDirection)
	q += " ORDER BY " + sortField + " " + direction
	if sortField != "a.id" {
		q += ", a.id " + direction
	}

	q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, p.Limit, p.Offset)
	q += `
		) q`

	var data sql.NullString
	var count sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&data, &count); err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	var raw json.RawMessage
	if data.Valid {
		raw = json.RawMessage(data.String)
	}
	return raw, int(count.Int64), nil
}
