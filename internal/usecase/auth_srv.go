package usecase

import (
	"context"

	"product-app/internal/data/entity"
	"product-app/internal/data/repository"
	"product-app/internal/dto/request"
	"product-app/internal/dto/response"
	"product-app/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgMissingFields      = "Missing required fields"
	msgCreateUserFailed   = "Failed to create user"
	msgInvalidCredentials = "Invalid credentials"
	msgAuthFailure        = "Authentication failure"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error)
	// Signin returns a signed bearer token.
	Signin(ctx context.Context, req *request.SigninRequest) (string, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *utils.TokenManager
	now    clock
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		now:    utcNow,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error) {
	// 1. Required fields
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, newError(KindValidation, nil, msgMissingFields)
	}

	dob, err := utils.ParseDate(req.DOB)
	if err != nil {
		return nil, newError(KindValidation, err, "Invalid DOB: %s", req.DOB)
	}

	id := uuid.New()

	// 2. Username must be free
	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, newError(KindStore, err, msgCreateUserFailed)
	}
	if existing != nil {
		return nil, newError(KindConflict, nil, "Username '%s' is not available", req.Username)
	}

	// 3. Field policies
	if !utils.ValidateVar(req.PhoneNumber, "phone_number") {
		return nil, newError(KindValidation, nil, "Invalid phoneNumber: %s", req.PhoneNumber)
	}
	if problem := utils.PasswordProblem(req.Password); problem != "" {
		return nil, newError(KindValidation, nil, "%s", problem)
	}

	now := s.now()
	switch age := utils.AgeAt(dob, now); {
	case age < utils.MinUserAge:
		return nil, newError(KindValidation, nil, "User must be at least %d years old", utils.MinUserAge)
	case age > utils.MaxUserAge:
		return nil, newError(KindValidation, nil, "User must be at most %d years old", utils.MaxUserAge)
	}

	// 4. Hash and persist
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, newError(KindStore, err, msgCreateUserFailed)
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        id,
			CreatedOn: now,
		},
		Username:     req.Username,
		PhoneNumber:  req.PhoneNumber,
		DateOfBirth:  dob,
		PasswordHash: hashed,
	}

	if err := s.repo.User.CreateIfAbsent(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, newError(KindStore, err, msgCreateUserFailed)
	}

	created, err := s.repo.User.FindByID(ctx, id)
	if err != nil || created == nil {
		s.log.Error("Failed to read created user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, newError(KindStore, err, msgCreateUserFailed)
	}

	s.log.Info("User signed up",
		zap.String("user_id", created.ID.String()),
		zap.String("username", created.Username),
	)

	resp := response.UserToResponse(created)
	return &resp, nil
}

func (s *authService) Signin(ctx context.Context, req *request.SigninRequest) (string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return "", newError(KindAuthentication, nil, msgInvalidCredentials)
	}

	var (
		user *entity.User
		err  error
	)
	if req.Username != "" {
		user, err = s.repo.User.FindByUsername(ctx, req.Username)
	} else {
		user, err = s.repo.User.FindByPhoneNumber(ctx, req.PhoneNumber)
	}
	if err != nil {
		s.log.Error("Failed to look up user", zap.Error(err))
		return "", newError(KindAuthentication, err, msgAuthFailure)
	}

	// Unknown user and wrong password are indistinguishable to the caller.
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Signin rejected", zap.String("username", req.Username))
		return "", newError(KindAuthentication, nil, msgInvalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Username)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return "", newError(KindAuthentication, err, msgAuthFailure)
	}

	record := &entity.AuthToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedOn: s.now(),
		},
		Token:  token,
		UserID: user.ID,
	}
	if err := s.repo.AuthToken.Create(ctx, record); err != nil {
		s.log.Error("Failed to store auth token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return "", newError(KindAuthentication, err, msgAuthFailure)
	}

	s.log.Info("User signed in", zap.String("user_id", user.ID.String()))

	return token, nil
}
