package product

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productCols() []string {
	return []string{
		"id", "name", "slug", "description", "unit", "price",
		"category_id", "image_url", "is_active", "created_at", "updated_at",
	}
}

func productRow(id uuid.UUID, name string, price string, active bool) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, name, "slug-" + name, nil, "pcs", price,
		uuid.New(), nil, active, now, now,
	}
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(productCols()).AddRow(productRow(id, "Milk", "12.50", true)...)

		mock.ExpectQuery(`(?s)SELECT .*FROM products WHERE id = \$1 AND is_active = TRUE`).
			WithArgs(id).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, GetOptions{ProductID: id, OnlyActive: true})
		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Milk", p.Name)
		assert.True(t, decimal.RequireFromString("12.50").Equal(p.Price))
	})

	t.Run("NotFound returns nil", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT .*FROM products WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productCols()))

		p, err := repo.GetByID(ctx, GetOptions{ProductID: id})
		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Active with search", func(t *testing.T) {
		search := "milk"

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE 1=1 AND is_active = TRUE AND name ILIKE \$1`).
			WithArgs("%milk%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows(productCols()).AddRow(productRow(uuid.New(), "Milk", "12.50", true)...)
		mock.ExpectQuery(`(?s)SELECT .*FROM products WHERE 1=1 AND is_active = TRUE AND name ILIKE \$1 ORDER BY name LIMIT \$2 OFFSET \$3`).
			WithArgs("%milk%", int32(20), int32(0)).
			WillReturnRows(rows)

		products, total, err := repo.List(ctx, ListOptions{OnlyActive: true, Search: &search})
		assert.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, products, 1)
	})

	t.Run("Count error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnError(errors.New("db error"))

		_, _, err := repo.List(ctx, ListOptions{})
		assert.Error(t, err)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	params := CreateProductParams{
		Name:       "Milk",
		Slug:       "milk",
		Unit:       "l",
		Price:      decimal.RequireFromString("12.50"),
		CategoryID: uuid.New(),
	}

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		rows := sqlmock.NewRows(productCols()).AddRow(productRow(id, "Milk", "12.50", true)...)

		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnRows(rows)

		p, err := repo.Create(ctx, params)
		assert.NoError(t, err)
		assert.Equal(t, id, p.ID)
	})

	t.Run("Duplicate slug", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, params)
		assert.ErrorIs(t, err, ErrDuplicateSlug)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Deactivate", func(t *testing.T) {
		active := false
		rows := sqlmock.NewRows(productCols()).AddRow(productRow(id, "Milk", "12.50", false)...)

		mock.ExpectQuery(`(?s)UPDATE products\s+SET updated_at = NOW\(\), is_active = \$1\s+WHERE id = \$2`).
			WithArgs(false, id).
			WillReturnRows(rows)

		p, err := repo.Update(ctx, UpdateProductParams{ProductID: id, IsActive: &active})
		assert.NoError(t, err)
		assert.False(t, p.IsActive)
	})

	t.Run("NotFound", func(t *testing.T) {
		active := false
		mock.ExpectQuery(`UPDATE products\s+SET`).
			WillReturnRows(sqlmock.NewRows(productCols()))

		_, err := repo.Update(ctx, UpdateProductParams{ProductID: id, IsActive: &active})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
