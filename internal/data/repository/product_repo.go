package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"product-app/internal/data/entity"
	"product-app/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProductRepository.FindByID returns (nil, nil) when the product does not exist.
type ProductRepository interface {
	// CreateIfAbsent fails with ErrAlreadyExists when the id is taken.
	CreateIfAbsent(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context) ([]*entity.Product, error)
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) CreateIfAbsent(ctx context.Context, product *entity.Product) error {
	attributes, err := json.Marshal(product.Attributes)
	if err != nil {
		return fmt.Errorf("encode product %s attributes: %w", product.ID, err)
	}

	query := `
		INSERT INTO products (id, attributes, image_url, created_on)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		attributes,
		product.ImageURL,
		product.CreatedOn,
	)
	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("create product %s: %w", product.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("create product %s: %w", product.ID, ErrAlreadyExists)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `
		SELECT id, attributes, image_url, created_on
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}

	return product, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, attributes, image_url, created_on
		FROM products
		ORDER BY created_on
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("find all products: %w", err)
	}
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE products SET image_url = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, imageURL)
	if err != nil {
		r.log.Error("Failed to update product image",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("update product %s image: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update product %s image: %w", id, ErrNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		product    entity.Product
		attributes []byte
	)
	if err := row.Scan(&product.ID, &attributes, &product.ImageURL, &product.CreatedOn); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attributes, &product.Attributes); err != nil {
		return nil, fmt.Errorf("decode product %s attributes: %w", product.ID, err)
	}
	if product.Attributes == nil {
		product.Attributes = map[string]any{}
	}
	return &product, nil
}
