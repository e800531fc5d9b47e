package repository

import (
	"errors"

	"product-app/pkg/database"
	"product-app/pkg/utils"

	"go.uber.org/zap"
)

// ErrAlreadyExists is returned when a conditional write finds the key taken.
var ErrAlreadyExists = errors.New("record already exists")

// ErrNotFound is returned by updates that target a missing record.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User      UserRepository
	AuthToken AuthTokenRepository
	Product   ProductRepository
}

// NewRepository builds the PostgreSQL-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		AuthToken: NewAuthTokenRepository(db, log),
		Product:   NewProductRepository(db, log),
	}
}

// NewDynamoRepository builds the DynamoDB-backed repositories.
func NewDynamoRepository(client DynamoAPI, tables utils.DynamoConfig, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewDynamoUserRepository(client, tables, log),
		AuthToken: NewDynamoAuthTokenRepository(client, tables.AuthTokensTable, log),
		Product:   NewDynamoProductRepository(client, tables.ProductsTable, log),
	}
}

// NewMemoryRepository builds process-local repositories for development and tests.
func NewMemoryRepository() *Repository {
	store := NewMemoryStore()
	return &Repository{
		User:      store.Users(),
		AuthToken: store.AuthTokens(),
		Product:   store.Products(),
	}
}
