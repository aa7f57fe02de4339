package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Line is a cart item joined with live catalog data for display.
type Line struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	Unit       string          `json:"unit"`
	ImageURL   *string         `json:"image_url,omitempty"`
	Price      decimal.Decimal `json:"price"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	Quantity   int32           `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
	IsActive   bool            `json:"is_active"`
}

// View is the cart as the storefront shows it.
type View struct {
	Lines     []Line          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int32           `json:"item_count"`
}

type AddItemParams struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

type UpdateItemParams struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

// GuestItem is one line of a client-held guest cart submitted on login.
type GuestItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}
