package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ower-data/internal/domain"
)

// debtorSortFields is the ORDER BY allow-list for the debtor listing.
// total_debt and name get special expressions in ListDebts.
var debtorSortFields = map[string]string{
	"id":                   "id",
	"name":                 "name",
	"identification":       "identification",
	"date":                 "date",
	"non_residential_debt": "non_residential_debt",
	"residential_debt":     "residential_debt",
	"land_debt":            "land_debt",
	"orenda_debt":          "orenda_debt",
	"mpz":                  "mpz",
	"total_debt":           "total_debt",
}

// totalDebtExpr is the null-safe sum of the five component debt fields.
const totalDebtExpr = `(COALESCE(o.non_residential_debt, 0) + COALESCE(o.residential_debt, 0) + COALESCE(o.land_debt, 0) + COALESCE(o.orenda_debt, 0) + COALESCE(o.mpz, 0))`

type PostgresDebtorsRepository struct {
	db *sql.DB
}

func NewPostgresDebtorsRepository(db *sql.DB) *PostgresDebtorsRepository {
	return &PostgresDebtorsRepository{db: db}
}

var _ DebtorsRepository = (*PostgresDebtorsRepository)(nil)

// ListDebts runs the single-roundtrip debtor listing: a de-duplicated phone
// view LEFT JOINed on (name, trailing identifier digits), total_debt computed
// in SQL, phone_status derived from the two check flags, and the page plus
// the total count returned as one aggregate row.
func (r *PostgresDebtorsRepository) ListDebts(ctx context.Context, p ListDebtsParams) (json.RawMessage, int, error) {
	suffixLen := p.IPNSuffixLen
	if suffixLen <= 0 {
		suffixLen = 3
	}

	q := `
		SELECT json_agg(
			json_build_object(
				'id', q.id,
				'name', q.name,
				'identification', q.identification,
				'date', q.date,
				'non_residential_debt', q.non_residential_debt,
				'residential_debt', q.residential_debt,
				'land_debt', q.land_debt,
				'orenda_debt', q.orenda_debt,
				'mpz', q.mpz,
				'total_debt', q.total_debt_calc,
				'phone_status', CASE
					WHEN q.ischecked IS TRUE AND q.hasnumber IS TRUE THEN 'has_phone'
					WHEN q.ischecked IS TRUE AND (q.hasnumber IS FALSE OR q.hasnumber IS NULL) THEN 'no_phone'
					ELSE 'not_checked'
				END,
				'ischecked', COALESCE(q.ischecked, false),
				'hasnumber', COALESCE(q.hasnumber, false)
			)
		) AS data,
		MAX(q.cnt) AS count
		FROM (
			SELECT o.*,
				` + totalDebtExpr + ` AS total_debt_calc,
				count(*) OVER () AS cnt,
				p.ischecked,
				p.hasnumber
			FROM ower.ower o
			LEFT JOIN (
				SELECT DISTINCT ON (name, ipn)
					clientid, phone, hasnumber, ischecked, name, ipn
				FROM ower.phone
				ORDER BY name, ipn, clientid DESC
			) p ON (
				o.name = p.name AND
				RIGHT(o.identification, $1) = p.ipn
			)
			WHERE 1=1`

	args := []any{suffixLen}
	argIdx := 2

	condText, condArgs, nextIdx := p.Conditions.Build("o", argIdx)
	q += condText
	args = append(args, condArgs...)
	argIdx = nextIdx

	if p.Title != "" {
		q += fmt.Sprintf(" AND o.name ILIKE $%d", argIdx)
		args = append(args, "%"+p.Title+"%")
		argIdx++
	}

	sortField := SafeSortField(p.SortBy, debtorSortFields, "name")
	direction := SortDirection(p.SortDirection)

	switch sortField {
	case "total_debt":
		q += " ORDER BY total_debt_calc " + direction
	case "name":
		// Collation-independent ordering for mixed-case names
		q += " ORDER BY LOWER(o.name) " + direction
	default:
		q += " ORDER BY o." + sortField + " " + direction
	}
	// Secondary key keeps a stable total order between equal primaries
	if sortField != "id" {
		q += ", o.id " + direction
	}

	q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, p.Limit, p.Offset)

	q += `
		) q`

	var data sql.NullString
	var count sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&data, &count); err != nil {
		return nil, 0, fmt.Errorf("failed to list debts: %w", err)
	}

	var raw json.RawMessage
	if data.Valid {
		raw = json.RawMessage(data.String)
	}
	return raw, int(count.Int64), nil
}

func (r *PostgresDebtorsRepository) GetDebtor(ctx context.Context, id int64) (*domain.Debtor, error) {
	q := `
		SELECT
			id,
			name,
			identification,
			date,
			non_residential_debt,
			residential_debt,
			land_debt,
			orenda_debt,
			mpz
		FROM ower.ower
		WHERE id = $1
	`

	var d domain.Debtor
	var date sql.NullTime
	var nonRes, res, land, orenda, mpz sql.NullFloat64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.Name,
		&d.Identification,
		&date,
		&nonRes,
		&res,
		&land,
		&orenda,
		&mpz,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("debtor %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get debtor: %w", err)
	}

	if date.Valid {
		d.Date = &date.Time
	}
	d.NonResidentialDebt = nullFloat(nonRes)
	d.ResidentialDebt = nullFloat(res)
	d.LandDebt = nullFloat(land)
	d.OrendaDebt = nullFloat(orenda)
	d.MPZ = nullFloat(mpz)

	return &d, nil
}

func (r *PostgresDebtorsRepository) GetDebtorName(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM ower.ower WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("debtor %d: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("failed to get debtor name: %w", err)
	}
	return name, nil
}

func (r *PostgresDebtorsRepository) GetRequisite(ctx context.Context) (*domain.Requisite, error) {
	return scanRequisite(r.db.QueryRowContext(ctx, `
		SELECT id, org_name, edrpou, account, bank_name, payment_purpose, address, phone
		FROM ower.settings
		LIMIT 1
	`))
}

// scanRequisite is shared with the kindergarten repository; both settings
// tables carry the same requisite columns.
func scanRequisite(row *sql.Row) (*domain.Requisite, error) {
	var req domain.Requisite
	err := row.Scan(
		&req.ID,
		&req.OrgName,
		&req.EDRPOU,
		&req.Account,
		&req.BankName,
		&req.PaymentPurpose,
		&req.Address,
		&req.Phone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("requisite: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get requisite: %w", err)
	}
	return &req, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
