package order

import (
	"time"

	"grocery-be/internal/address"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlaced         Status = "PLACED"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// validTransitions maps each status to the statuses an order may move to.
// DELIVERED and CANCELLED are terminal.
var validTransitions = map[Status][]Status{
	StatusPlaced:         {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	next, ok := validTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"`
	AddressID       uuid.UUID        `json:"address_id"`
	AddressSnapshot address.Snapshot `json:"address_snapshot"`
	Status          Status           `json:"status"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	DeliveryFee     decimal.Decimal  `json:"delivery_fee"`
	Total           decimal.Decimal  `json:"total"`
	InvoiceNumber   string           `json:"invoice_number"`
	Notes           *string          `json:"notes,omitempty"`
	Items           []OrderItem      `json:"items,omitempty"`
	History         []StatusEntry    `json:"history,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// OrderItem is a frozen copy of a cart line at checkout time. Product name,
// unit and price never change after the order is placed.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// StatusEntry is one append-only row of an order's status history.
type StatusEntry struct {
	ID        int64     `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Status    Status    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CheckoutParams struct {
	UserID         uuid.UUID
	AddressID      uuid.UUID
	Notes          *string
	IdempotencyKey *string
}

// CreateOrderParams carries everything the checkout transaction persists.
type CreateOrderParams struct {
	UserID          uuid.UUID
	AddressID       uuid.UUID
	AddressSnapshot address.Snapshot
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	Total           decimal.Decimal
	Notes           *string
	IdempotencyKey  *string
	Items           []OrderItem
}

type ListOptions struct {
	UserID *uuid.UUID
	Status *Status
	Limit  int32
	Offset int32
}

type TransitionParams struct {
	OrderID   uuid.UUID
	Next      Status
	ChangedBy string
	Notes     *string
}
