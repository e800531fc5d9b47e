package repository

import (
	"context"
	"fmt"

	"product-app/internal/data/entity"
	"product-app/pkg/database"

	"go.uber.org/zap"
)

type AuthTokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
}

type authTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuthTokenRepository(db database.PgxIface, log *zap.Logger) AuthTokenRepository {
	return &authTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "auth_token")),
	}
}

func (r *authTokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, token, user_id, created_on)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.Token,
		token.UserID,
		token.CreatedOn,
	)

	if err != nil {
		r.log.Error("Failed to create auth token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create auth token: %w", err)
	}

	return nil
}
