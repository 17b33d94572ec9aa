// Package domain holds the printable label model and the rules that derive it from orders.
package domain

import (
	"time"

	"label-printer/internal/features/labels/tracking"
	orders "label-printer/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

// EstimatedDeliveryDays is added to the shipping date for the printed delivery estimate.
const EstimatedDeliveryDays = 2

// Label is everything printed on one page.
type Label struct {
	OrderID               string            `json:"order_id"`
	OrderNumber           string            `json:"order_number"`
	TrackingID            string            `json:"tracking_id"`
	TrackingSurrogate     bool              `json:"tracking_surrogate"`
	Recipient             Recipient         `json:"recipient"`
	Zone                  string            `json:"zone,omitempty"`
	PaymentMethod         string            `json:"payment_method"`
	TotalAmount           decimal.Decimal   `json:"total_amount"`
	CODAmount             decimal.Decimal   `json:"cod_amount"`
	ShippingDate          time.Time         `json:"shipping_date"`
	EstimatedDeliveryDate time.Time         `json:"estimated_delivery_date"`
	Items                 []orders.LineItem `json:"items"`
	CustomerMissing       bool              `json:"customer_missing"`
}

// IsCOD reports whether the COD block is printed.
func (l Label) IsCOD() bool {
	return l.CODAmount.IsPositive()
}

// BuildLabel derives a label from an order and its optional customer.
// now is the shipping date; the tracking identifier follows format.
func BuildLabel(order orders.Order, customer *orders.Customer, format tracking.Format, now time.Time) Label {
	recipient := AssembleRecipient(order, customer)

	trackingID, surrogate := format.Normalize(order.TrackingNumber, tracking.Seed{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		RecipientName: recipient.Name,
	})

	return Label{
		OrderID:               order.ID,
		OrderNumber:           order.OrderNumber,
		TrackingID:            trackingID,
		TrackingSurrogate:     surrogate,
		Recipient:             recipient,
		Zone:                  ZoneHint(recipient.AddressLine),
		PaymentMethod:         order.PaymentMethod,
		TotalAmount:           order.TotalAmount,
		CODAmount:             CODAmount(order.PaymentMethod, order.TotalAmount),
		ShippingDate:          now,
		EstimatedDeliveryDate: now.AddDate(0, 0, EstimatedDeliveryDays),
		Items:                 order.Items,
		CustomerMissing:       customer == nil,
	}
}
