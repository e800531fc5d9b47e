package repository

import (
	"context"
	"fmt"
	"time"

	"product-app/internal/data/entity"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"go.uber.org/zap"
)

type authTokenItem struct {
	ID        string `dynamodbav:"id"`
	Token     string `dynamodbav:"token"`
	UserID    string `dynamodbav:"userId"`
	CreatedOn string `dynamodbav:"createdOn"`
}

type dynamoAuthTokenRepository struct {
	client DynamoAPI
	table  string
	log    *zap.Logger
}

func NewDynamoAuthTokenRepository(client DynamoAPI, table string, log *zap.Logger) AuthTokenRepository {
	return &dynamoAuthTokenRepository{
		client: client,
		table:  table,
		log:    log.With(zap.String("repository", "auth_token")),
	}
}

func (r *dynamoAuthTokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	item, err := attributevalue.MarshalMap(authTokenItem{
		ID:        token.ID.String(),
		Token:     token.Token,
		UserID:    token.UserID.String(),
		CreatedOn: token.CreatedOn.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("encode auth token: %w", err)
	}

	if err := putIfAbsent(ctx, r.client, r.table, item); err != nil {
		r.log.Error("Failed to create auth token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create auth token: %w", err)
	}

	return nil
}
