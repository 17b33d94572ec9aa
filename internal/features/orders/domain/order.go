package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the read-only view of an order record owned by the order backend.
type Order struct {
	// ID is the backend identifier used in /api/orders/{id}.
	ID string `json:"id"`
	// OrderNumber is the human-readable order number (e.g., PD1001).
	OrderNumber string `json:"order_number"`
	// CustomerID references a customer record. Empty when the order was placed without one.
	CustomerID string `json:"customer_id,omitempty"`
	// CustomerName is the name captured on the order itself.
	CustomerName string `json:"customer_name,omitempty"`
	// CustomerPhone is the phone captured on the order itself.
	CustomerPhone string `json:"customer_phone,omitempty"`
	// ShippingAddress is the free-text address captured on the order.
	ShippingAddress string `json:"shipping_address,omitempty"`
	// TrackingNumber is the carrier tracking number. May be empty or a placeholder.
	TrackingNumber string `json:"tracking_number,omitempty"`
	// PaymentMethod is the backend payment tag (e.g., cash_on_delivery, bank_transfer).
	PaymentMethod string `json:"payment_method"`
	// TotalAmount is the order total in baht.
	TotalAmount decimal.Decimal `json:"total_amount"`
	// Items are the ordered line items.
	Items []LineItem `json:"items"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// HasCustomer reports whether the order references a customer record.
func (o Order) HasCustomer() bool {
	return o.CustomerID != ""
}

// LineItem is a product line on an order.
type LineItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal returns quantity times unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Customer is a customer record with a Thai-style structured address.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	HouseNumber string `json:"house_number,omitempty"`
	Road        string `json:"road,omitempty"`
	SubDistrict string `json:"sub_district,omitempty"`
	District    string `json:"district,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
}

// AddressParts returns the address components in label order:
// house number, road, sub-district, district, province, postal code.
func (c Customer) AddressParts() []string {
	return []string{c.HouseNumber, c.Road, c.SubDistrict, c.District, c.Province, c.PostalCode}
}

// OrderDetails is an order with its customer record, as labels see it.
type OrderDetails struct {
	Order    *Order    `json:"order"`
	Customer *Customer `json:"customer,omitempty"`
	// CustomerError explains why a referenced customer record could not be loaded.
	CustomerError string `json:"customer_error,omitempty"`
}
