package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"product-app/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var userColumns = []string{"id", "username", "phone_number", "dob", "password", "created_on"}

func newPgxMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func pgUser() *entity.User {
	return &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedOn: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
		},
		Username:     "alice",
		PhoneNumber:  "+1-2345678901",
		DateOfBirth:  time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		PasswordHash: "$2a$10$hash",
	}
}

func TestUserRepository_CreateIfAbsent(t *testing.T) {
	tests := []struct {
		name    string
		expect  func(*pgxmock.ExpectedExec)
		wantErr error
		anyErr  bool
	}{
		{
			name: "inserted",
			expect: func(e *pgxmock.ExpectedExec) {
				e.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "id already taken",
			expect: func(e *pgxmock.ExpectedExec) {
				e.WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "username unique violation",
			expect: func(e *pgxmock.ExpectedExec) {
				e.WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
			},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "connection failure",
			expect: func(e *pgxmock.ExpectedExec) {
				e.WillReturnError(errors.New("connection refused"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newPgxMock(t)
			repo := NewUserRepository(mock, zap.NewNop())
			user := pgUser()

			tt.expect(mock.ExpectExec(`INSERT INTO users`).
				WithArgs(user.ID, user.Username, user.PhoneNumber, user.DateOfBirth, user.PasswordHash, user.CreatedOn))

			err := repo.CreateIfAbsent(context.Background(), user)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrAlreadyExists)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock := newPgxMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	user := pgUser()

	mock.ExpectQuery(`FROM users\s+WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(user.ID, user.Username, user.PhoneNumber, user.DateOfBirth, user.PasswordHash, user.CreatedOn))

	got, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user, got)
}

func TestUserRepository_FindByPhoneNumber_NoRows(t *testing.T) {
	mock := newPgxMock(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`FROM users\s+WHERE phone_number = \$1`).
		WithArgs("+1-2345678901").
		WillReturnRows(pgxmock.NewRows(userColumns))

	got, err := repo.FindByPhoneNumber(context.Background(), "+1-2345678901")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_FindByID_QueryError(t *testing.T) {
	mock := newPgxMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(errors.New("statement timeout"))

	got, err := repo.FindByID(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement timeout")
	assert.Nil(t, got)
}
