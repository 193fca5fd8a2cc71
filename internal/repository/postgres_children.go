package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ower-data/internal/domain"
)

// Sort keys for the roster listing; group_name and kindergarten_name come
// from the joined groups table.
var childSortFields = map[string]string{
	"id":                "cr.id",
	"child_name":        "cr.child_name",
	"parent_name":       "cr.parent_name",
	"group_name":        "kg.group_name",
	"kindergarten_name": "kg.kindergarten_name",
	"created_at":        "cr.created_at",
}

type PostgresChildrenRepository struct {
	db *sql.DB
}

func NewPostgresChildrenRepository(db *sql.DB) *PostgresChildrenRepository {
	return &PostgresChildrenRepository{db: db}
}

var _ ChildrenRepository = (*PostgresChildrenRepository)(nil)

func (r *PostgresChildrenRepository) List(ctx context.Context, p ListChildrenParams) (json.RawMessage, int, error) {
	q := `
		SELECT json_agg(q.rw) AS data, MAX(q.cnt) AS count
		FROM (
			SELECT json_build_object(
				'id', cr.id,
				'child_name', cr.child_name,
				'parent_name', cr.parent_name,
				'phone_number', cr.phone_number,
				'group_id', cr.group_id,
				'group_name', kg.group_name,
				'kindergarten_name', kg.kindergarten_name,
				'created_at', cr.created_at
			) AS rw,
			count(*) OVER () AS cnt
			FROM ower.children_roster cr
			JOIN ower.kindergarten_groups kg ON kg.id = cr.group_id
			WHERE 1=1`

	args := []any{}
	argIdx := 1

	if p.ChildName != "" {
		q += fmt.Sprintf(" AND cr.child_name ILIKE $%d", argIdx)
		args = append(args, "%"+p.ChildName+"%")
		argIdx++
	}
	if p.ParentName != "" {
		q += fmt.Sprintf(" AND cr.parent_name ILIKE $%d", argIdx)
		args = append(args, "%"+p.ParentName+"%")
		argIdx++
	}
	if p.GroupID != nil {
		q += fmt.Sprintf(" AND cr.group_id = $%d", argIdx)
		args = append(args, *p.GroupID)
		argIdx++
	}

	sortField := SafeSortField(p.SortBy, childSortFields, "cr.id")
	direction := SortDirection(p.SortDirection)
	q += " ORDER BY " + sortField + " " + direction
	if sortField != "cr.id" {
		q += ", cr.id " + direction
	}

	q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, p.Limit, p.Offset)
	q += `
		) q`

	var data sql.NullString
	var count sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&data, &count); err != nil {
		return nil, 0, fmt.Errorf("failed to list children roster: %w", err)
	}

	var raw json.RawMessage
	if data.Valid {
		raw = json.RawMessage(data.String)
	}
	return raw, int(count.Int64), nil
}

const childItemColumns = `
	cr.id, cr.child_name, cr.parent_name, COALESCE(cr.phone_number, ''), cr.group_id, cr.created_at,
	kg.group_name, kg.kindergarten_name`

func (r *PostgresChildrenRepository) GetByID(ctx context.Context, id int64) (*domain.ChildRosterItem, error) {
	q := `
		SELECT ` + childItemColumns + `
		FROM ower.children_roster cr
		JOIN ower.kindergarten_groups kg ON kg.id = cr.group_id
		WHERE cr.id = $1
	`

	var item domain.ChildRosterItem
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&item.ID, &item.ChildName, &item.ParentName, &item.PhoneNumber, &item.GroupID, &item.CreatedAt,
		&item.GroupName, &item.KindergartenName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("roster entry %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get roster entry: %w", err)
	}
	return &item, nil
}

func (r *PostgresChildrenRepository) FindByNameAndGroup(ctx context.Context, childName string, groupID int64, excludeID *int64) (*domain.ChildRosterEntry, error) {
	q := `
		SELECT id, child_name, parent_name, COALESCE(phone_number, ''), group_id, created_at
		FROM ower.children_roster
		WHERE child_name = $1 AND group_id = $2
	`
	args := []any{childName, groupID}
	if excludeID != nil {
		q += ` AND id != $3`
		args = append(args, *excludeID)
	}
	q += ` LIMIT 1`

	var c domain.ChildRosterEntry
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&c.ID, &c.ChildName, &c.ParentName, &c.PhoneNumber, &c.GroupID, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find roster entry by natural key: %w", err)
	}
	return &c, nil
}

func (r *PostgresChildrenRepository) Create(ctx context.Context, c *domain.ChildRosterEntry) (*domain.ChildRosterEntry, error) {
	q := `
		INSERT INTO ower.children_roster
			(child_name, parent_name, phone_number, group_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, child_name, parent_name, COALESCE(phone_number, ''), group_id, created_at
	`

	var out domain.ChildRosterEntry
	err := r.db.QueryRowContext(ctx, q, c.ChildName, c.ParentName, c.PhoneNumber, c.GroupID).Scan(
		&out.ID, &out.ChildName, &out.ParentName, &out.PhoneNumber, &out.GroupID, &out.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("child %q in group %d: %w", c.ChildName, c.GroupID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create roster entry: %w", err)
	}
	return &out, nil
}

func (r *PostgresChildrenRepository) Update(ctx context.Context, c *domain.ChildRosterEntry) (*domain.ChildRosterEntry, error) {
	q := `
		UPDATE ower.children_roster
		SET child_name = $1, parent_name = $2, phone_number = $3, group_id = $4
		WHERE id = $5
		RETURNING id, child_name, parent_name, COALESCE(phone_number, ''), group_id, created_at
	`

	var out domain.ChildRosterEntry
	err := r.db.QueryRowContext(ctx, q, c.ChildName, c.ParentName, c.PhoneNumber, c.GroupID, c.ID).Scan(
		&out.ID, &out.ChildName, &out.ParentName, &out.PhoneNumber, &out.GroupID, &out.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("roster entry %d: %w", c.ID, domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("child %q in group %d: %w", c.ChildName, c.GroupID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update roster entry: %w", err)
	}
	return &out, nil
}

func (r *PostgresChildrenRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ower.children_roster WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("roster entry %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresChildrenRepository) ListAll(ctx context.Context) ([]domain.ChildRosterItem, error) {
	q := `
		SELECT ` + childItemColumns + `
		FROM ower.children_roster cr
		JOIN ower.kindergarten_groups kg ON kg.id = cr.group_id
		ORDER BY kg.kindergarten_name, kg.group_name, cr.child_name
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list full roster: %w", err)
	}
	defer rows.Close()

	out := []domain.ChildRosterItem{}
	for rows.Next() {
		var item domain.ChildRosterItem
		if err := rows.Scan(
			&item.ID, &item.ChildName, &item.ParentName, &item.PhoneNumber, &item.GroupID, &item.CreatedAt,
			&item.GroupName, &item.KindergartenName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
