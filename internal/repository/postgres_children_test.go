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

func setupMockChildrenDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresChildrenRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresChildrenRepository(db)
}

func TestListChildren_GroupFilter(t *testing.T) {
	db, mock, repo := setupMockChildrenDB(t)
	defer db.Close()

	groupID := int64(2)
	data := `[{"id":1,"child_name":"Марія","group_id":2,"group_name":"Бджілки"}]`
	mock.ExpectQuery(`SELECT json_agg`).
		WithArgs(groupID, 16, 0).
		WillReturnRows(sqlmock.NewRows([]string{"data", "count"}).AddRow(data, 1))

	raw, count, err := repo.List(context.Background(), ListChildrenParams{
		Limit:   16,
		GroupID: &groupID,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.JSONEq(t, data, string(raw))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChild_UniqueViolationBecomesConflict(t *testing.T) {
	db, mock, repo := setupMockChildrenDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO ower.children_roster`).
		WithArgs("Марія Коваль", "Коваль Олена", "+380501112233", int64(2)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "children_roster_natural_key"})

	c, err := repo.Create(context.Background(), &domain.ChildRosterEntry{
		ChildName:   "Марія Коваль",
		ParentName:  "Коваль Олена",
		PhoneNumber: "+380501112233",
		GroupID:     2,
	})

	assert.Nil(t, c)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindChildByNaturalKey_NoMatchIsNotAnError(t *testing.T) {
	db, mock, repo := setupMockChildrenDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("Марія Коваль", int64(2)).
		WillReturnError(sql.ErrNoRows)

	c, err := repo.FindByNameAndGroup(context.Background(), "Марія Коваль", 2, nil)

	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllChildren(t *testing.T) {
	db, mock, repo := setupMockChildrenDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "child_name", "parent_name", "phone_number", "group_id", "created_at",
		"group_name", "kindergarten_name",
	}).
		AddRow(1, "Марія Коваль", "Коваль Олена", "+380501112233", 2, now, "Бджілки", "Сонечко").
		AddRow(2, "Іван Шевчук", "Шевчук Павло", "", 2, now, "Бджілки", "Сонечко")

	mock.ExpectQuery(`FROM ower.children_roster cr`).
		WillReturnRows(rows)

	items, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Сонечко", items[0].KindergartenName)
	assert.Equal(t, "Бджілки", items[1].GroupName)

	require.NoError(t, mock.ExpectationsWereMet())
}
