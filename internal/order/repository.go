package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"grocery-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	// CreateOrder persists a new order, its frozen items, the initial
	// PLACED history entry and the invoice number, and clears the user's
	// cart, all in one transaction.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	GetByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*Order, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, int64, error)
	// UpdateStatus applies a transition with an optimistic guard on the
	// persisted status. ErrStatusChanged when the guard misses.
	UpdateStatus(ctx context.Context, params TransitionParams, current Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = ` id, user_id, address_id, address_snapshot, status,
	subtotal, delivery_fee, total, invoice_number, notes, created_at, updated_at `

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (*Order, error) {
	var o Order
	var snapshot []byte
	err := row.Scan(
		&o.ID, &o.UserID, &o.AddressID, &snapshot, &o.Status,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.InvoiceNumber,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &o.AddressSnapshot); err != nil {
		return nil, fmt.Errorf("failed to decode address snapshot: %w", err)
	}
	return &o, nil
}

func (r *repository) CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", params.UserID.String()),
	)

	snapshot, err := json.Marshal(params.AddressSnapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode address snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Allocate the next invoice number for the current year.
	year := time.Now().Year()
	var seq int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO invoice_counters (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE
		SET last_value = invoice_counters.last_value + 1
		RETURNING last_value
	`, year).Scan(&seq)
	if err != nil {
		log.Error("failed to allocate invoice number", zap.Error(err))
		return nil, err
	}
	invoiceNumber := fmt.Sprintf("INV-%d-%06d", year, seq)

	// 2. Insert the order.
	var o Order
	var rawSnapshot []byte
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id, address_id, address_snapshot, status,
			subtotal, delivery_fee, total, invoice_number, notes, idempotency_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING`+orderColumns,
		uuid.New(), params.UserID, params.AddressID, snapshot, StatusPlaced,
		params.Subtotal, params.DeliveryFee, params.Total,
		invoiceNumber, params.Notes, params.IdempotencyKey,
	).Scan(
		&o.ID, &o.UserID, &o.AddressID, &rawSnapshot, &o.Status,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.InvoiceNumber,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		// A concurrent checkout with the same key won the insert race.
		if pqErr, ok := err.(*pq.Error); ok &&
			string(pqErr.Code) == pgUniqueViolation &&
			pqErr.Constraint == "orders_user_idempotency_key" {
			return nil, ErrDuplicateCheckout
		}
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}
	o.AddressSnapshot = params.AddressSnapshot

	// 3. Insert the frozen items.
	for _, item := range params.Items {
		var saved OrderItem
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, product_name, unit,
				quantity, unit_price, line_total
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, order_id, product_id, product_name, unit,
				quantity, unit_price, line_total
		`,
			uuid.New(), o.ID, item.ProductID, item.ProductName, item.Unit,
			item.Quantity, item.UnitPrice, item.LineTotal,
		).Scan(
			&saved.ID, &saved.OrderID, &saved.ProductID, &saved.ProductName,
			&saved.Unit, &saved.Quantity, &saved.UnitPrice, &saved.LineTotal,
		)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, err
		}
		o.Items = append(o.Items, saved)
	}

	// 4. Initial history entry.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, changed_by)
		VALUES ($1, $2, $3)
	`, o.ID, StatusPlaced, "system")
	if err != nil {
		log.Error("failed to insert status history", zap.Error(err))
		return nil, err
	}

	// 5. Clear the cart.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_items WHERE user_id = $1
	`, params.UserID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("invoice_number", o.InvoiceNumber),
	)
	return &o, nil
}

func (r *repository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE user_id = $1 AND idempotency_key = $2
	`, userID, key))
	if err == ErrOrderNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, o)
}

func (r *repository) GetByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID))
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, o)
}

func (r *repository) GetByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID))
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, o)
}

// hydrate attaches the frozen items and the status history to an order.
func (r *repository) hydrate(ctx context.Context, o *Order) (*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, unit,
			quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name
	`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Unit, &item.Quantity, &item.UnitPrice, &item.LineTotal,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	histRows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, status, changed_by, notes, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return nil, err
	}
	defer histRows.Close()

	for histRows.Next() {
		var entry StatusEntry
		if err := histRows.Scan(
			&entry.ID, &entry.OrderID, &entry.Status,
			&entry.ChangedBy, &entry.Notes, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.History = append(o.History, entry)
	}
	if err := histRows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if opts.UserID != nil {
		where += fmt.Sprintf(" AND user_id = $%d", argPos)
		args = append(args, *opts.UserID)
		argPos++
	}
	if opts.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *opts.Status)
		argPos++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := "SELECT" + orderColumns + "FROM orders" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("list query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		var o Order
		var snapshot []byte
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.AddressID, &snapshot, &o.Status,
			&o.Subtotal, &o.DeliveryFee, &o.Total, &o.InvoiceNumber,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(snapshot, &o.AddressSnapshot); err != nil {
			return nil, 0, fmt.Errorf("failed to decode address snapshot: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, params TransitionParams, current Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", params.OrderID.String()),
		zap.String("from", string(current)),
		zap.String("to", string(params.Next)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Optimistic guard: when another writer already moved the order the
	// WHERE misses and nothing is written.
	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, params.Next, params.OrderID, current)
	if err != nil {
		log.Error("status update failed", zap.Error(err))
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Warn("optimistic guard missed")
		return ErrStatusChanged
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)
	`, params.OrderID, params.Next, params.ChangedBy, params.Notes)
	if err != nil {
		log.Error("failed to append status history", zap.Error(err))
		return err
	}

	return tx.Commit()
}
