package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ower-data/internal/domain"
)

var groupSortFields = map[string]string{
	"id":                "id",
	"kindergarten_name": "kindergarten_name",
	"group_name":        "group_name",
	"group_type":        "group_type",
	"created_at":        "created_at",
}

type PostgresGroupsRepository struct {
	db *sql.DB
}

func NewPostgresGroupsRepository(db *sql.DB) *PostgresGroupsRepository {
	return &PostgresGroupsRepository{db: db}
}

var _ GroupsRepository = (*PostgresGroupsRepository)(nil)

func (r *PostgresGroupsRepository) List(ctx context.Context, p ListGroupsParams) (json.RawMessage, int, error) {
	q := `
		SELECT json_agg(q.rw) AS data, MAX(q.cnt) AS count
		FROM (
			SELECT json_build_object(
				'id', kg.id,
				'kindergarten_name', kg.kindergarten_name,
				'group_name', kg.group_name,
				'group_type', kg.group_type,
				'created_at', kg.created_at
			) AS rw,
			count(*) OVER () AS cnt
			FROM ower.kindergarten_groups kg
			WHERE 1=1`

	args := []any{}
	argIdx := 1

	if p.KindergartenName != "" {
		q += fmt.Sprintf(" AND kg.kindergarten_name ILIKE $%d", argIdx)
		args = append(args, "%"+p.KindergartenName+"%")
		argIdx++
	}
	if p.GroupName != "" {
		q += fmt.Sprintf(" AND kg.group_name ILIKE $%d", argIdx)
		args = append(args, "%"+p.GroupName+"%")
		argIdx++
	}
	if p.GroupType != "" {
		q += fmt.Sprintf(" AND kg.group_type = $%d", argIdx)
		args = append(args, p.GroupType)
		argIdx++
	}

	sortField := SafeSortField(p.SortBy, groupSortFields, "id")
	direction := SortDirection(p.SortDirection)
	q += " ORDER BY kg." + sortField + " " + direction

	q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, p.Limit, p.Offset)
	q += `
		) q`

	var data sql.NullString
	var count sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&data, &count); err != nil {
		return nil, 0, fmt.Errorf("failed to list kindergarten groups: %w", err)
	}

	var raw json.RawMessage
	if data.Valid {
		raw = json.RawMessage(data.String)
	}
	return raw, int(count.Int64), nil
}

func (r *PostgresGroupsRepository) GetByID(ctx context.Context, id int64) (*domain.KindergartenGroup, error) {
	q := `
		SELECT id, kindergarten_name, group_name, group_type, created_at
		FROM ower.kindergarten_groups
		WHERE id = $1
	`

	var g domain.KindergartenGroup
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.KindergartenName, &g.GroupName, &g.GroupType, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("group %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

func (r *PostgresGroupsRepository) FindByNameAndKindergarten(ctx context.Context, groupName, kindergartenName string, excludeID *int64) (*domain.KindergartenGroup, error) {
	q := `
		SELECT id, kindergarten_name, group_name, group_type, created_at
		FROM ower.kindergarten_groups
		WHERE group_name = $1 AND kindergarten_name = $2
	`
	args := []any{groupName, kindergartenName}
	if excludeID != nil {
		q += ` AND id != $3`
		args = append(args, *excludeID)
	}
	q += ` LIMIT 1`

	var g domain.KindergartenGroup
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&g.ID, &g.KindergartenName, &g.GroupName, &g.GroupType, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find group by natural key: %w", err)
	}
	return &g, nil
}

func (r *PostgresGroupsRepository) Create(ctx context.Context, g *domain.KindergartenGroup) (*domain.KindergartenGroup, error) {
	q := `
		INSERT INTO ower.kindergarten_groups
			(kindergarten_name, group_name, group_type, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, kindergarten_name, group_name, group_type, created_at
	`

	var out domain.KindergartenGroup
	err := r.db.QueryRowContext(ctx, q, g.KindergartenName, g.GroupName, g.GroupType).Scan(
		&out.ID, &out.KindergartenName, &out.GroupName, &out.GroupType, &out.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("group %q in %q: %w", g.GroupName, g.KindergartenName, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &out, nil
}

func (r *PostgresGroupsRepository) Update(ctx context.Context, g *domain.KindergartenGroup) (*domain.KindergartenGroup, error) {
	q := `
		UPDATE ower.kindergarten_groups
		SET kindergarten_name = $1, group_name = $2, group_type = $3
		WHERE id = $4
		RETURNING id, kindergarten_name, group_name, group_type, created_at
	`

	var out domain.KindergartenGroup
	err := r.db.QueryRowContext(ctx, q, g.KindergartenName, g.GroupName, g.GroupType, g.ID).Scan(
		&out.ID, &out.KindergartenName, &out.GroupName, &out.GroupType, &out.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("group %d: %w", g.ID, domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("group %q in %q: %w", g.GroupName, g.KindergartenName, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return &out, nil
}

func (r *PostgresGroupsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ower.kindergarten_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
