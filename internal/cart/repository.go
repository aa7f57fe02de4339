package cart

import (
	"context"
	"database/sql"
	"time"

	"grocery-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetItemByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)
	CreateItem(ctx context.Context, userID, productID uuid.UUID, quantity int32, priceAtAdd decimal.Decimal) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (*CartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	GetLines(ctx context.Context, userID uuid.UUID) ([]Line, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cartItemColumns = `id, user_id, product_id, quantity, price_at_add, created_at, updated_at`

func (r *repository) GetItemByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.PriceAtAdd, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, userID, productID uuid.UUID, quantity int32, priceAtAdd decimal.Decimal) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
	)

	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, quantity, price_at_add)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+cartItemColumns+`
	`, uuid.New(), userID, productID, quantity, priceAtAdd).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.PriceAtAdd, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Debug("cart item created", zap.String("cart_item_id", item.ID.String()))
	return &item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+cartItemColumns+`
	`, quantity, itemID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.PriceAtAdd, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
	`, userID)
	return err
}

func (r *repository) GetLines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetLines"),
		zap.String("user_id", userID.String()),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.product_id,
			p.name,
			p.slug,
			p.unit,
			p.image_url,
			p.price,
			c.price_at_add,
			c.quantity,
			p.is_active
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ProductID, &l.Name, &l.Slug, &l.Unit, &l.ImageURL,
			&l.Price, &l.PriceAtAdd, &l.Quantity, &l.IsActive,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		l.LineTotal = l.Price.Mul(decimal.NewFromInt32(l.Quantity))
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(lines)),
		zap.Duration("duration", time.Since(start)),
	)

	return lines, nil
}
