package ports

import (
	"context"
	"errors"

	"label-printer/internal/features/orders/domain"
)

var (
	// ErrOrderNotFound is returned when the backend has no order with the given id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCustomerNotFound is returned when the backend has no customer with the given id.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrUpstreamRejected is returned when the backend answers with success=false.
	ErrUpstreamRejected = errors.New("order backend rejected the request")
)

// OrderSource defines the interface for reading orders and customers from the order backend.
// This is a Secondary Port (Driven Port).
type OrderSource interface {
	// GetOrder retrieves an order by its backend identifier.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	// GetCustomer retrieves a customer by its backend identifier.
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
}

// OrderService defines the interface for order lookups exposed over HTTP.
// This is a Primary Port (Driving Port).
type OrderService interface {
	// GetOrder returns an order together with its customer record, when it has one.
	GetOrder(ctx context.Context, orderID string) (*domain.OrderDetails, error)
}
