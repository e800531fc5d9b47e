package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"product-app/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var productColumns = []string{"id", "attributes", "image_url", "created_on"}

var productCreatedOn = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestProductRepository_CreateIfAbsent(t *testing.T) {
	product := &entity.Product{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedOn: productCreatedOn},
		Attributes: map[string]any{"price": 10, "name": "shoe"},
	}

	t.Run("inserted with attributes as json", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())

		mock.ExpectExec(`INSERT INTO products`).
			WithArgs(product.ID, []byte(`{"name":"shoe","price":10}`), pgxmock.AnyArg(), product.CreatedOn).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, repo.CreateIfAbsent(context.Background(), product))
	})

	t.Run("id already taken", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())

		mock.ExpectExec(`INSERT INTO products`).
			WithArgs(product.ID, pgxmock.AnyArg(), pgxmock.AnyArg(), product.CreatedOn).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		assert.ErrorIs(t, repo.CreateIfAbsent(context.Background(), product), ErrAlreadyExists)
	})

	t.Run("unencodable attributes never reach the database", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())

		bad := &entity.Product{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedOn: productCreatedOn},
			Attributes: map[string]any{"callback": func() {}},
		}
		assert.Error(t, repo.CreateIfAbsent(context.Background(), bad))
	})
}

func TestProductRepository_FindByID(t *testing.T) {
	id := uuid.New()
	imageURL := "https://product-bucket.s3.us-east-1.amazonaws.com/product-1/abc-shoe.png"

	tests := []struct {
		name       string
		rows       *pgxmock.Rows
		want       *entity.Product
		wantErr    bool
		wantAbsent bool
	}{
		{
			name: "decodes jsonb attributes",
			rows: pgxmock.NewRows(productColumns).
				AddRow(id, []byte(`{"name":"shoe","price":12.5}`), &imageURL, productCreatedOn),
			want: &entity.Product{
				BaseSimple: entity.BaseSimple{ID: id, CreatedOn: productCreatedOn},
				ImageURL:   &imageURL,
				Attributes: map[string]any{"name": "shoe", "price": 12.5},
			},
		},
		{
			name: "null attributes become an empty object",
			rows: pgxmock.NewRows(productColumns).
				AddRow(id, []byte(`null`), (*string)(nil), productCreatedOn),
			want: &entity.Product{
				BaseSimple: entity.BaseSimple{ID: id, CreatedOn: productCreatedOn},
				Attributes: map[string]any{},
			},
		},
		{
			name:    "corrupt attributes",
			rows:    pgxmock.NewRows(productColumns).AddRow(id, []byte(`{"name":`), (*string)(nil), productCreatedOn),
			wantErr: true,
		},
		{
			name:       "no rows",
			rows:       pgxmock.NewRows(productColumns),
			wantAbsent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newPgxMock(t)
			repo := NewProductRepository(mock, zap.NewNop())

			mock.ExpectQuery(`FROM products\s+WHERE id = \$1`).
				WithArgs(id).
				WillReturnRows(tt.rows)

			got, err := repo.FindByID(context.Background(), id)
			switch {
			case tt.wantErr:
				assert.Error(t, err)
				assert.Nil(t, got)
			case tt.wantAbsent:
				assert.NoError(t, err)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestProductRepository_FindAll(t *testing.T) {
	t.Run("rows in created order", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())
		first, second := uuid.New(), uuid.New()

		mock.ExpectQuery(`FROM products\s+ORDER BY created_on`).
			WillReturnRows(pgxmock.NewRows(productColumns).
				AddRow(first, []byte(`{"name":"shoe"}`), (*string)(nil), productCreatedOn).
				AddRow(second, []byte(`{"name":"hat"}`), (*string)(nil), productCreatedOn.Add(time.Minute)))

		got, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first, got[0].ID)
		assert.Equal(t, "hat", got[1].Attributes["name"])
	})

	t.Run("empty table", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())

		mock.ExpectQuery(`FROM products\s+ORDER BY created_on`).
			WillReturnRows(pgxmock.NewRows(productColumns))

		got, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query failure", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())

		mock.ExpectQuery(`FROM products`).
			WillReturnError(errors.New("connection reset"))

		got, err := repo.FindAll(context.Background())
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestProductRepository_UpdateImageURL(t *testing.T) {
	id := uuid.New()
	url := "http://localhost:4566/product-bucket/product-1/abc-shoe.png"

	t.Run("updated", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())

		mock.ExpectExec(`UPDATE products SET image_url = \$2 WHERE id = \$1`).
			WithArgs(id, url).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateImageURL(context.Background(), id, url))
	})

	t.Run("missing product", func(t *testing.T) {
		mock := newPgxMock(t)
		repo := NewProductRepository(mock, zap.NewNop())

		mock.ExpectExec(`UPDATE products SET image_url`).
			WithArgs(id, url).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.UpdateImageURL(context.Background(), id, url), ErrNotFound)
	})
}
