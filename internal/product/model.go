package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"category_id"`
	ImageURL    *string         `json:"image_url,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ListOptions struct {
	CategoryID *uuid.UUID
	Search     *string
	OnlyActive bool
	Limit      int32
	Page       int32
}

type GetOptions struct {
	ProductID  uuid.UUID
	OnlyActive bool
}

type CreateProductParams struct {
	Name        string
	Slug        string
	Description *string
	Unit        string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	ImageURL    *string
}

type UpdateProductParams struct {
	ProductID   uuid.UUID
	Name        *string
	Description *string
	Unit        *string
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
	ImageURL    *string
	IsActive    *bool
}
