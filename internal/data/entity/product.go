package entity

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Attribute names owned by the server; sellers cannot set them.
const (
	ProductIDField        = "id"
	ProductImageURLField  = "imageUrl"
	ProductCreatedOnField = "createdOn"
)

// Product is a catalog record made of arbitrary seller-supplied attributes
// plus the server-owned fields.
type Product struct {
	BaseSimple
	ImageURL   *string        `db:"image_url"`
	Attributes map[string]any `db:"attributes"`
}

// NewProduct copies attrs, drops the server-owned keys and assigns a fresh id.
func NewProduct(attrs map[string]any, now time.Time) *Product {
	clean := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if isReservedField(k) {
			continue
		}
		clean[k] = v
	}
	return &Product{
		BaseSimple: BaseSimple{
			ID:        uuid.New(),
			CreatedOn: now.UTC(),
		},
		Attributes: clean,
	}
}

// Fields flattens the product into a single attribute map.
func (p *Product) Fields() map[string]any {
	fields := make(map[string]any, len(p.Attributes)+3)
	maps.Copy(fields, p.Attributes)
	fields[ProductIDField] = p.ID.String()
	fields[ProductCreatedOnField] = p.CreatedOn.UTC().Format(time.RFC3339Nano)
	if p.ImageURL != nil {
		fields[ProductImageURLField] = *p.ImageURL
	}
	return fields
}

func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}

// ProductFromFields is the inverse of Fields.
func ProductFromFields(fields map[string]any) (*Product, error) {
	rawID, _ := fields[ProductIDField].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", rawID, err)
	}

	product := &Product{
		BaseSimple: BaseSimple{ID: id},
		Attributes: make(map[string]any, len(fields)),
	}

	if rawCreated, ok := fields[ProductCreatedOnField].(string); ok && rawCreated != "" {
		createdOn, err := time.Parse(time.RFC3339Nano, rawCreated)
		if err != nil {
			return nil, fmt.Errorf("product %s createdOn %q: %w", id, rawCreated, err)
		}
		product.CreatedOn = createdOn
	}

	if imageURL, ok := fields[ProductImageURLField].(string); ok && imageURL != "" {
		product.ImageURL = &imageURL
	}

	for k, v := range fields {
		if !isReservedField(k) {
			product.Attributes[k] = v
		}
	}

	return product, nil
}

func isReservedField(name string) bool {
	switch name {
	case ProductIDField, ProductImageURLField, ProductCreatedOnField:
		return true
	}
	return false
}
