package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"product-app/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthTokenRepository_Create(t *testing.T) {
	token := &entity.AuthToken{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedOn: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)},
		Token:      "header.payload.signature",
		UserID:     uuid.New(),
	}

	t.Run("stored", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewAuthTokenRepository(mock, zap.NewNop())

		mock.ExpectExec(`INSERT INTO auth_tokens`).
			WithArgs(token.ID, token.Token, token.UserID, token.CreatedOn).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, repo.Create(context.Background(), token))
	})

	t.Run("store failure", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewAuthTokenRepository(mock, zap.NewNop())

		mock.ExpectExec(`INSERT INTO auth_tokens`).
			WithArgs(token.ID, token.Token, token.UserID, token.CreatedOn).
			WillReturnError(errors.New("insert or update on table violates foreign key constraint"))

		err := repo.Create(context.Background(), token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create auth token")
	})
}
