package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ower-data/internal/domain"
)

func setupMockGroupsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresGroupsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresGroupsRepository(db)
}

func TestListGroups_Filters(t *testing.T) {
	db, mock, repo := setupMockGroupsDB(t)
	defer db.Close()

	data := `[{"id":1,"kindergarten_name":"Сонечко","group_name":"Бджілки","group_type":"young"}]`
	mock.ExpectQuery(`SELECT json_agg`).
		WithArgs("%Сонечко%", "young", 16, 0).
		WillReturnRows(sqlmock.NewRows([]string{"data", "count"}).AddRow(data, 1))

	raw, count, err := repo.List(context.Background(), ListGroupsParams{
		Limit:            16,
		KindergartenName: "Сонечко",
		GroupType:        "young",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.JSONEq(t, data, string(raw))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindGroupByNaturalKey_NoMatchIsNotAnError(t *testing.T) {
	db, mock, repo := setupMockGroupsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("Бджілки", "Сонечко").
		WillReturnError(sql.ErrNoRows)

	g, err := repo.FindByNameAndKindergarten(context.Background(), "Бджілки", "Сонечко", nil)

	require.NoError(t, err)
	assert.Nil(t, g)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindGroupByNaturalKey_ExcludesID(t *testing.T) {
	db, mock, repo := setupMockGroupsDB(t)
	defer db.Close()

	excludeID := int64(4)
	rows := sqlmock.NewRows([]string{"id", "kindergarten_name", "group_name", "group_type", "created_at"}).
		AddRow(9, "Сонечко", "Бджілки", "young", time.Now())

	mock.ExpectQuery(`SELECT`).
		WithArgs("Бджілки", "Сонечко", excludeID).
		WillReturnRows(rows)

	g, err := repo.FindByNameAndKindergarten(context.Background(), "Бджілки", "Сонечко", &excludeID)

	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, int64(9), g.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGroup_UniqueViolationBecomesConflict(t *testing.T) {
	db, mock, repo := setupMockGroupsDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO ower.kindergarten_groups`).
		WithArgs("Сонечко", "Бджілки", "young").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "kindergarten_groups_natural_key"})

	g, err := repo.Create(context.Background(), &domain.KindergartenGroup{
		KindergartenName: "Сонечко",
		GroupName:        "Бджілки",
		GroupType:        domain.GroupTypeYoung,
	})

	assert.Nil(t, g)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateGroup_NotFound(t *testing.T) {
	db, mock, repo := setupMockGroupsDB(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE ower.kindergarten_groups`).
		WithArgs("Сонечко", "Бджілки", "older", int64(12)).
		WillReturnError(sql.ErrNoRows)

	g, err := repo.Update(context.Background(), &domain.KindergartenGroup{
		ID:               12,
		KindergartenName: "Сонечко",
		GroupName:        "Бджілки",
		GroupType:        domain.GroupTypeOlder,
	})

	assert.Nil(t, g)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGroup_ZeroRowsIsNotFound(t *testing.T) {
	db, mock, repo := setupMockGroupsDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM ower.kindergarten_groups`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
