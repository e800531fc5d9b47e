package repository

import (
	"context"
	"errors"
	"fmt"

	"product-app/internal/data/entity"
	"product-app/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// UserRepository finders return (nil, nil) when no user matches.
type UserRepository interface {
	// CreateIfAbsent fails with ErrAlreadyExists when the id or username is taken.
	CreateIfAbsent(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error)
}

const pgUniqueViolation = "23505"

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (ur *userRepository) CreateIfAbsent(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, phone_number, dob, password, created_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PhoneNumber,
		user.DateOfBirth,
		user.PasswordHash,
		user.CreatedOn,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("create user %s: %w", user.Username, ErrAlreadyExists)
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("create user %s: %w", user.ID, ErrAlreadyExists)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id", id)
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, "username", username)
}

func (ur *userRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error) {
	return ur.findOne(ctx, "phone_number", phoneNumber)
}

// findOne looks a user up by one of the indexed columns; column is never user input.
func (ur *userRepository) findOne(ctx context.Context, column string, value any) (*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, phone_number, dob, password, created_on
		FROM users
		WHERE %s = $1
		LIMIT 1
	`, column)

	var user entity.User
	err := ur.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.PhoneNumber,
		&user.DateOfBirth,
		&user.PasswordHash,
		&user.CreatedOn,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("by", column),
		)
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}

	return &user, nil
}
