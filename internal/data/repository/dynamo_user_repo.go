package repository

import (
	"context"
	"fmt"
	"time"

	"product-app/internal/data/entity"
	"product-app/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userItem struct {
	ID          string `dynamodbav:"id"`
	Username    string `dynamodbav:"username"`
	PhoneNumber string `dynamodbav:"phoneNumber"`
	DateOfBirth string `dynamodbav:"dob"`
	Password    string `dynamodbav:"password"`
	CreatedOn   string `dynamodbav:"createdOn"`
}

type dynamoUserRepository struct {
	client DynamoAPI
	tables utils.DynamoConfig
	log    *zap.Logger
}

func NewDynamoUserRepository(client DynamoAPI, tables utils.DynamoConfig, log *zap.Logger) UserRepository {
	return &dynamoUserRepository{
		client: client,
		tables: tables,
		log:    log.With(zap.String("repository", "user")),
	}
}

func (r *dynamoUserRepository) CreateIfAbsent(ctx context.Context, user *entity.User) error {
	item, err := attributevalue.MarshalMap(userItem{
		ID:          user.ID.String(),
		Username:    user.Username,
		PhoneNumber: user.PhoneNumber,
		DateOfBirth: user.DateOfBirth.UTC().Format(time.RFC3339Nano),
		Password:    user.PasswordHash,
		CreatedOn:   user.CreatedOn.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.ID, err)
	}

	if err := putIfAbsent(ctx, r.client, r.tables.UsersTable, item); err != nil {
		if err != ErrAlreadyExists {
			r.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("user_id", user.ID.String()),
			)
		}
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}

	return nil
}

func (r *dynamoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	item, err := getByID(ctx, r.client, r.tables.UsersTable, id.String())
	if err != nil {
		r.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}
	return decodeUser(item)
}

func (r *dynamoUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	item, err := queryFirst(ctx, r.client, r.tables.UsersTable, r.tables.UsernameIndex, "username", username)
	if err != nil {
		r.log.Error("Failed to find user by username", zap.Error(err))
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return decodeUser(item)
}

func (r *dynamoUserRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error) {
	item, err := queryFirst(ctx, r.client, r.tables.UsersTable, r.tables.PhoneNumberIndex, "phoneNumber", phoneNumber)
	if err != nil {
		r.log.Error("Failed to find user by phone number", zap.Error(err))
		return nil, fmt.Errorf("find user by phone number: %w", err)
	}
	return decodeUser(item)
}

func decodeUser(item map[string]types.AttributeValue) (*entity.User, error) {
	if item == nil {
		return nil, nil
	}

	var raw userItem
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	id, err := uuid.Parse(raw.ID)
	if err != nil {
		return nil, fmt.Errorf("decode user id %q: %w", raw.ID, err)
	}
	dob, err := utils.ParseDate(raw.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("decode user %s dob: %w", id, err)
	}
	createdOn, err := utils.ParseDate(raw.CreatedOn)
	if err != nil {
		return nil, fmt.Errorf("decode user %s createdOn: %w", id, err)
	}

	return &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        id,
			CreatedOn: createdOn,
		},
		Username:     raw.Username,
		PhoneNumber:  raw.PhoneNumber,
		DateOfBirth:  dob,
		PasswordHash: raw.Password,
	}, nil
}
