package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewUserRepository(db), mock
}

var userColumns = []string{"id", "created_at", "updated_at", "email", "name", "password_hash", "status"}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(42, now, now, "amani@example.com", "Amani", "hash", "active"))

	user, err := repo.FindByEmail(context.Background(), "amani@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, "Amani", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	now := time.Now()
	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		dbErr   error
		want    bool
		wantErr bool
	}{
		{"active", sqlmock.NewRows(userColumns).AddRow(7, now, now, "a@b.c", "", "h", "active"), nil, true, false},
		{"suspended", sqlmock.NewRows(userColumns).AddRow(7, now, now, "a@b.c", "", "h", "suspended"), nil, false, false},
		{"missing", sqlmock.NewRows(userColumns), nil, false, false},
		{"db down", nil, errors.New("db down"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			exp := mock.ExpectQuery(query)
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			got, err := repo.Exists(context.Background(), 7)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
