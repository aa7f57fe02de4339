package invoice

import (
	"time"

	"grocery-be/internal/order"
)

// Document is a point-in-time projection of an order for invoicing. It is
// derived entirely from the order's frozen data, so building it twice from
// the same order yields an equal document.
type Document struct {
	InvoiceNumber string    `json:"invoice_number"`
	IssuedAt      time.Time `json:"issued_at"`
	OrderID       string    `json:"order_id"`
	OrderStatus   string    `json:"order_status"`
	Buyer         Buyer     `json:"buyer"`
	Lines         []Line    `json:"lines"`
	Subtotal      string    `json:"subtotal"`
	DeliveryFee   string    `json:"delivery_fee"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
}

// Buyer is the delivery address block printed on the invoice.
type Buyer struct {
	Street    string `json:"street"`
	Building  string `json:"building,omitempty"`
	Floor     string `json:"floor,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Postcode  string `json:"postcode"`
	City      string `json:"city"`
}

type Line struct {
	ProductName string `json:"product_name"`
	Unit        string `json:"unit"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FromOrder builds an invoice document from a placed order. The order is
// never mutated.
func FromOrder(o *order.Order, currency string) (*Document, error) {
	if o.InvoiceNumber == "" {
		return nil, ErrNotInvoiceable
	}

	doc := &Document{
		InvoiceNumber: o.InvoiceNumber,
		IssuedAt:      o.CreatedAt,
		OrderID:       o.ID.String(),
		OrderStatus:   string(o.Status),
		Buyer: Buyer{
			Street:    o.AddressSnapshot.Street,
			Building:  deref(o.AddressSnapshot.Building),
			Floor:     deref(o.AddressSnapshot.Floor),
			Apartment: deref(o.AddressSnapshot.Apartment),
			Postcode:  o.AddressSnapshot.Postcode,
			City:      o.AddressSnapshot.City,
		},
		Subtotal:    o.Subtotal.StringFixed(2),
		DeliveryFee: o.DeliveryFee.StringFixed(2),
		Total:       o.Total.StringFixed(2),
		Currency:    currency,
	}

	for _, item := range o.Items {
		doc.Lines = append(doc.Lines, Line{
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}

	return doc, nil
}
