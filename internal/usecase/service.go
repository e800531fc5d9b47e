package usecase

import (
	"time"

	"product-app/internal/data/repository"
	"product-app/pkg/storage"
	"product-app/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Product ProductService
}

func NewService(
	repo *repository.Repository,
	objects storage.ObjectStore,
	tokens *utils.TokenManager,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		Product: NewProductService(repo.Product, objects, config.Upload, log),
	}
}

// clock is overridden in tests.
type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
