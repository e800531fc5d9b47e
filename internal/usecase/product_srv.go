package usecase

import (
	"context"
	"errors"
	"io"

	"product-app/internal/data/entity"
	"product-app/internal/data/repository"
	"product-app/internal/dto/response"
	"product-app/pkg/storage"
	"product-app/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, attrs map[string]any) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	UploadImage(ctx context.Context, productID, contentType string, body io.Reader) (*response.ImageResponse, error)
}

type productService struct {
	products      repository.ProductRepository
	objects       storage.ObjectStore
	maxImageBytes int64
	now           clock
	log           *zap.Logger
}

func NewProductService(
	products repository.ProductRepository,
	objects storage.ObjectStore,
	upload utils.UploadConfig,
	log *zap.Logger,
) ProductService {
	return &productService{
		products:      products,
		objects:       objects,
		maxImageBytes: upload.MaxImageBytes,
		now:           utcNow,
		log:           log.With(zap.String("service", "product")),
	}
}

func (s *productService) Create(ctx context.Context, attrs map[string]any) (*entity.Product, error) {
	if attrs == nil {
		return nil, newError(KindValidation, nil, "Invalid body")
	}

	product := entity.NewProduct(attrs, s.now())
	if err := s.products.CreateIfAbsent(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("product_id", product.ID.String()))
		return nil, newError(KindStore, err, "Failed to create product")
	}

	created, err := s.products.FindByID(ctx, product.ID)
	if err != nil || created == nil {
		s.log.Error("Failed to read created product", zap.Error(err), zap.String("product_id", product.ID.String()))
		return nil, newError(KindStore, err, "Failed to create product")
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	s.log.Info("Product created",
		zap.String("product_id", created.ID.String()),
		zap.String("created_by", userID),
	)
	return created, nil
}

func (s *productService) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, newError(KindStore, err, "Failed to fetch products")
	}
	return products, nil
}

func (s *productService) UploadImage(ctx context.Context, productID, contentType string, body io.Reader) (*response.ImageResponse, error) {
	// 1. Transport checks come before any store access
	boundary, err := multipartBoundary(contentType)
	if err != nil {
		return nil, err
	}

	if productID == "" {
		return nil, newError(KindValidation, nil, "Product is null")
	}
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, newError(KindValidation, err, "Invalid product id")
	}

	// 2. Product must exist
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, newError(KindStore, err, "Failed to fetch product")
	}
	if product == nil {
		return nil, newError(KindNotFound, nil, "Product '%s' not found", productID)
	}

	// 3. Exactly one image
	image, err := readSingleImage(body, boundary, s.maxImageBytes)
	if err != nil {
		s.log.Warn("Image upload rejected", zap.Error(err), zap.String("product_id", productID))
		return nil, err
	}

	// 4. Store it and record where it lives
	key := utils.ProductImageKey(id, image.Filename)
	if err := s.objects.PutObject(ctx, key, image.ContentType, image.Data); err != nil {
		return nil, newError(KindStore, err, "Failed to upload image")
	}

	imageURL := s.objects.PublicURL(key)
	if err := s.products.UpdateImageURL(ctx, id, imageURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, err, "Product '%s' not found", productID)
		}
		return nil, newError(KindStore, err, "Failed to update product image")
	}

	s.log.Info("Product image uploaded",
		zap.String("product_id", productID),
		zap.String("key", key),
		zap.String("content_type", image.ContentType),
	)

	return &response.ImageResponse{ImageURL: imageURL}, nil
}
