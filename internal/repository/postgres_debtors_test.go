package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ower-data/internal/domain"
)

func setupMockDebtorsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresDebtorsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresDebtorsRepository(db)
}

func TestListDebts_TitleAndSort(t *testing.T) {
	db, mock, repo := setupMockDebtorsDB(t)
	defer db.Close()

	data := `[{"id":1,"name":"Петренко Петро","total_debt":150.5,"phone_status":"has_phone"}]`
	rows := sqlmock.NewRows([]string{"data", "count"}).AddRow(data, 42)

	// args: ipn suffix length, title pattern, limit, offset
	mock.ExpectQuery(`SELECT json_agg`).
		WithArgs(3, "%Петр%", 16, 0).
		WillReturnRows(rows)

	raw, count, err := repo.ListDebts(context.Background(), ListDebtsParams{
		Limit:         16,
		Offset:        0,
		Title:         "Петр",
		SortBy:        "total_debt",
		SortDirection: "desc",
		IPNSuffixLen:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.JSONEq(t, data, string(raw))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListDebts_ConditionsAndDefaults(t *testing.T) {
	db, mock, repo := setupMockDebtorsDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"data", "count"}).AddRow(`[]`, 0)

	// IPNSuffixLen not set falls back to 3; string condition becomes ILIKE
	mock.ExpectQuery(`SELECT json_agg`).
		WithArgs(3, "%1234567890%", 16, 32).
		WillReturnRows(rows)

	_, _, err := repo.ListDebts(context.Background(), ListDebtsParams{
		Limit:      16,
		Offset:     32,
		Conditions: Conditions{"identification": "1234567890"},
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListDebts_EmptyPage(t *testing.T) {
	db, mock, repo := setupMockDebtorsDB(t)
	defer db.Close()

	// json_agg over zero rows yields SQL NULL for both columns
	rows := sqlmock.NewRows([]string{"data", "count"}).AddRow(nil, nil)
	mock.ExpectQuery(`SELECT json_agg`).
		WithArgs(3, 16, 0).
		WillReturnRows(rows)

	raw, count, err := repo.ListDebts(context.Background(), ListDebtsParams{Limit: 16})

	require.NoError(t, err)
	assert.Nil(t, raw)
	assert.Equal(t, 0, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDebtor_NotFound(t *testing.T) {
	db, mock, repo := setupMockDebtorsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	d, err := repo.GetDebtor(context.Background(), 99)

	assert.Nil(t, d)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDebtor_NullDebtFields(t *testing.T) {
	db, mock, repo := setupMockDebtorsDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "name", "identification", "date",
		"non_residential_debt", "residential_debt", "land_debt", "orenda_debt", "mpz",
	}).AddRow(7, "Коваленко Іван", "1234567890", nil, 100.0, nil, nil, nil, 25.5)

	mock.ExpectQuery(`SELECT`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	d, err := repo.GetDebtor(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, d.NonResidentialDebt)
	assert.Nil(t, d.ResidentialDebt)
	assert.Nil(t, d.Date)
	assert.InDelta(t, 125.5, d.TotalDebt(), 0.001)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDebtorName(t *testing.T) {
	db, mock, repo := setupMockDebtorsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT name FROM ower.ower`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Шевченко Оксана"))

	name, err := repo.GetDebtorName(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Шевченко Оксана", name)

	require.NoError(t, mock.ExpectationsWereMet())
}
