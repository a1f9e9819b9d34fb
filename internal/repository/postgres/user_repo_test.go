package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventions/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users \(id, name, street, city, country, phone, mail\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)$`).
					WithArgs("auth0|alice", "Alice", nil, nil, nil, nil, "alice@example.com").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "existing identity",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})
				mock.ExpectRollback()
			},
			wantErr: true,
			errIs:   domain.ErrIdentityAlreadyExists,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO users`).WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewUserRepository(db).Create(ctx, &domain.User{ID: "auth0|alice", Name: "Alice", Mail: "alice@example.com"})
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			user: &domain.User{ID: "auth0|alice", Name: "Alice", Phone: "123"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE users SET name = \$1, street = \$2, city = \$3, country = \$4, phone = \$5, mail = \$6 WHERE id = \$7`).
					WithArgs("Alice", nil, nil, nil, "123", nil, "auth0|alice").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "not found zero rows affected",
			user: &domain.User{ID: "nonexistent", Name: "A"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE users`).
					WithArgs("A", nil, nil, nil, nil, nil, "nonexistent").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			user: &domain.User{ID: "user-1", Name: "A"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE users`).WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Update(ctx, tt.user)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, street, city, country, phone, mail FROM users WHERE id = \$1`).
		WithArgs("auth0|bob", 1, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "street", "city", "country", "phone", "mail"}).
			AddRow("auth0|bob", "Bob", "Elm 2", nil, nil, nil, "bob@example.com"))

	u, err := NewUserRepository(db).GetByID(ctx, "auth0|bob")
	require.NoError(t, err)
	assert.Equal(t, "Elm 2", u.Street)
	assert.Equal(t, "bob@example.com", u.Mail)
	assert.Empty(t, u.City)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteReferenced(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs("auth0|bob").WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err = NewUserRepository(db).Delete(ctx, "auth0|bob")
	require.ErrorIs(t, err, domain.ErrStillReferenced)
	require.NoError(t, mock.ExpectationsWereMet())
}
