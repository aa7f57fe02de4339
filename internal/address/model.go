package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	Street    string  `json:"street"`
	Building  *string `json:"building,omitempty"`
	Floor     *string `json:"floor,omitempty"`
	Apartment *string `json:"apartment,omitempty"`
	Postcode  string  `json:"postcode"`
	City      string  `json:"city"`

	IsDefault  bool `json:"is_default"`
	IsVerified bool `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is the frozen copy of an address written into an order.
type Snapshot struct {
	Street    string  `json:"street"`
	Building  *string `json:"building,omitempty"`
	Floor     *string `json:"floor,omitempty"`
	Apartment *string `json:"apartment,omitempty"`
	Postcode  string  `json:"postcode"`
	City      string  `json:"city"`
}

func (a *Address) ToSnapshot() Snapshot {
	return Snapshot{
		Street:    a.Street,
		Building:  a.Building,
		Floor:     a.Floor,
		Apartment: a.Apartment,
		Postcode:  a.Postcode,
		City:      a.City,
	}
}

// ServicePostcode is one allowlist entry of the delivery area.
type ServicePostcode struct {
	ID        int64     `json:"id"`
	Postcode  string    `json:"postcode"`
	CityName  string    `json:"city_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateAddressInput struct {
	Street    string
	Building  *string
	Floor     *string
	Apartment *string
	Postcode  string
	City      string
	IsDefault bool
}

type UpdateAddressInput struct {
	AddressID uuid.UUID
	Street    *string
	Building  *string
	Floor     *string
	Apartment *string
	IsDefault *bool
}
