package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Token string `json:"token" validate:"required"`
}

type addToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int32     `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity" validate:"min=0"`
}

type guestCartItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int32     `json:"quantity" validate:"required,min=1"`
}

type syncCartRequest struct {
	Items []guestCartItem `json:"items" validate:"dive"`
}

type createAddressRequest struct {
	Street    string  `json:"street" validate:"required"`
	Building  *string `json:"building,omitempty"`
	Floor     *string `json:"floor,omitempty"`
	Apartment *string `json:"apartment,omitempty"`
	Postcode  string  `json:"postcode" validate:"required,len=4,numeric"`
	IsDefault bool    `json:"is_default"`
}

type updateAddressRequest struct {
	Street    *string `json:"street,omitempty"`
	Building  *string `json:"building,omitempty"`
	Floor     *string `json:"floor,omitempty"`
	Apartment *string `json:"apartment,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

type checkoutRequest struct {
	AddressID uuid.UUID `json:"address_id" validate:"required"`
	Notes     *string   `json:"notes,omitempty"`
}

type createProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Unit        string          `json:"unit" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"required"`
	ImageURL    *string         `json:"image_url,omitempty"`
}

type updateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type createCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	SortOrder int    `json:"sort_order"`
}

type addPostcodeRequest struct {
	Postcode string `json:"postcode" validate:"required,len=4,numeric"`
	CityName string `json:"city_name" validate:"required"`
}

type transitionRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// bindAndValidate binds the JSON body and runs struct validation, writing a
// 400 itself on failure so handlers only need to short-circuit.
func bindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validationFields(err),
		})
		return false
	}
	return true
}

func validationFields(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
