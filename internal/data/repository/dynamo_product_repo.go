package repository

import (
	"context"
	"fmt"
	"sort"

	"product-app/internal/data/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type dynamoProductRepository struct {
	client DynamoAPI
	table  string
	log    *zap.Logger
}

func NewDynamoProductRepository(client DynamoAPI, table string, log *zap.Logger) ProductRepository {
	return &dynamoProductRepository{
		client: client,
		table:  table,
		log:    log.With(zap.String("repository", "product")),
	}
}

func (r *dynamoProductRepository) CreateIfAbsent(ctx context.Context, product *entity.Product) error {
	item, err := attributevalue.MarshalMap(product.Fields())
	if err != nil {
		return fmt.Errorf("encode product %s: %w", product.ID, err)
	}

	if err := putIfAbsent(ctx, r.client, r.table, item); err != nil {
		if err != ErrAlreadyExists {
			r.log.Error("Failed to create product",
				zap.Error(err),
				zap.String("product_id", product.ID.String()),
			)
		}
		return fmt.Errorf("create product %s: %w", product.ID, err)
	}

	return nil
}

func (r *dynamoProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	item, err := getByID(ctx, r.client, r.table, id.String())
	if err != nil {
		r.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	if item == nil {
		return nil, nil
	}
	return decodeProduct(item)
}

// FindAll scans the whole table, following pagination.
func (r *dynamoProductRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})

	products := []*entity.Product{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.log.Error("Failed to scan products", zap.Error(err))
			return nil, fmt.Errorf("scan products: %w", err)
		}
		for _, item := range page.Items {
			product, err := decodeProduct(item)
			if err != nil {
				r.log.Error("Failed to decode product", zap.Error(err))
				return nil, err
			}
			products = append(products, product)
		}
	}

	// Scan order is arbitrary; keep listings stable.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedOn.Before(products[j].CreatedOn)
	})

	return products, nil
}

func (r *dynamoProductRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name(dynamoKeyAttribute))).
		WithUpdate(expression.Set(expression.Name(entity.ProductImageURLField), expression.Value(imageURL))).
		Build()
	if err != nil {
		return fmt.Errorf("build product %s image update: %w", id, err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       idKey(id.String()),
		ConditionExpression:       expr.Condition(),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("update product %s image: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update product image", zap.Error(err), zap.String("product_id", id.String()))
		return fmt.Errorf("update product %s image: %w", id, err)
	}

	return nil
}

func decodeProduct(item map[string]types.AttributeValue) (*entity.Product, error) {
	var fields map[string]any
	if err := attributevalue.UnmarshalMap(item, &fields); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return entity.ProductFromFields(fields)
}
